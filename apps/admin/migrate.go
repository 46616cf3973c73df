package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/storage/database"
)

var migrateFunc = runMigration // mockable

func runMigration(conf core.PostgresConfig, command string, args ...string) error {
	if err := database.CreateIfNotExist(conf); err != nil {
		return err
	}
	db, err := database.OpenPostgres(conf)
	if err != nil {
		return errors.Wrap(err, "opening postgres database")
	}
	defer func() { _ = db.Close() }()

	return database.RunMigration(db, command, args...)
}

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run a migration command (up, down, status, ...) against the postgres database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrateFunc(cli.conf.Database.Postgres, args[0], args[1:]...)
		},
	}
}
