package main

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/course"
	"github.com/trezcool/studentlogs/core/studentlog"
	"github.com/trezcool/studentlogs/storage/database"
)

type commandLine struct {
	conf   *core.Config
	logger core.Logger

	stores    *database.Stores
	courseSvc course.Service
	logSvc    studentlog.Service
}

func (cli *commandLine) initServices(stores *database.Stores) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	studentlog.InitValidators(validate, translator)

	cli.stores = stores
	cli.courseSvc = course.NewService(stores.Courses, validate)
	cli.logSvc = studentlog.NewService(stores.Logs, validate, cli.conf)
}

// connect opens the configured storage engine unless services are already set.
func (cli *commandLine) connect(cmd *cobra.Command, _ []string) error {
	if cli.courseSvc != nil && cli.logSvc != nil {
		return nil
	}
	stores, err := database.Open(cmd.Context(), cli.conf, cli.logger)
	if err != nil {
		return err
	}
	cli.initServices(stores)
	return nil
}

func (cli *commandLine) close() error {
	if cli.stores == nil {
		return nil
	}
	return cli.stores.Close()
}

func (cli *commandLine) rootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Administration commands for " + cli.conf.AppName,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	root.AddCommand(
		cli.migrateCmd(),
		cli.addCourseCmd(),
		cli.importCoursesCmd(),
		cli.exportLogsCmd(),
	)
	return root
}

// run executes the command line `args` (without program name).
func (cli *commandLine) run(cmd *cobra.Command, args []string) error {
	cmd.SetArgs(args)
	return cmd.Execute()
}
