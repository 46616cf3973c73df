package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/course"
	"github.com/trezcool/studentlogs/core/studentlog"
	logsvc "github.com/trezcool/studentlogs/services/logger"
	"github.com/trezcool/studentlogs/storage/database"
	"github.com/trezcool/studentlogs/tests"
)

func setup(t *testing.T) *commandLine {
	conf := &core.Config{AppName: "Student Logs", Env: "TEST", TestMode: true}
	conf.Database.Engine = database.EngineMemory

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "ADMIN : ", 0), conf)
	logger.Enable(false)

	cli := &commandLine{conf: conf, logger: logger}
	t.Cleanup(func() { _ = cli.close() })
	return cli
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErrStr string
	wantOut    string
}

func runCLITests(t *testing.T, cli *commandLine, tests []cliTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := cli.run(cli.rootCmd(&out), tt.args)
			if tt.wantErrStr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrStr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	var ranCommand string
	migrateFunc = func(conf core.PostgresConfig, command string, args ...string) error {
		ranCommand = command
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}
	defer func() { migrateFunc = runMigration }()

	runCLITests(t, cli, []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErrStr: "requires at least 1 arg(s)"},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "status", args: []string{"migrate", "status"}},
	})
	assert.Equal(t, "status", ranCommand)
}

func Test_commandLine_addCourse(t *testing.T) {
	cli := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "no flags", args: []string{"add-course"}, wantErrStr: `required flag(s) "display", "id" not set`},
		{name: "created", args: []string{"add-course", "--id", "CS4690", "--display", "DevOps"}, wantOut: `Course "CS4690" (DevOps) created.`},
		{name: "duplicate", args: []string{"add-course", "--id", "CS4690", "--display", "DevOps"}, wantErrStr: course.ErrExists.Error()},
		{name: "invalid id", args: []string{"add-course", "--id", "CS 1400", "--display", "Fundamentals"}, wantErrStr: "nospace"},
	})

	courses, err := cli.courseSvc.QueryAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []course.Course{{ID: "CS4690", Display: "DevOps"}}, courses)
}

func writeCoursesSheet(t *testing.T, rows [][]interface{}) string {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "courses.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func Test_commandLine_importCourses(t *testing.T) {
	cli := setup(t)
	path := writeCoursesSheet(t, [][]interface{}{
		{"ID", "Display"},
		{"CS4690", "DevOps"},
		{"", "No ID"},
		{"MATH1210"},
		{"CS3380", "Databases"},
		{"CS4690", "DevOps again"},
		{"CS 1400", "Fundamentals"},
	})

	runCLITests(t, cli, []cliTest{
		{name: "no file", args: []string{"import-courses"}, wantErrStr: `required flag(s) "file" not set`},
		{name: "missing file", args: []string{"import-courses", "--file", filepath.Join(t.TempDir(), "nope.xlsx")}, wantErrStr: "no such file"},
		{name: "imported", args: []string{"import-courses", "--file", path}, wantOut: "2 course(s) imported, 4 skipped."},
		{name: "unknown sheet", args: []string{"import-courses", "--file", path, "--sheet", "Nope"}, wantErrStr: `reading sheet "Nope"`},
	})

	courses, err := cli.courseSvc.QueryAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []course.Course{{ID: "CS4690", Display: "DevOps"}, {ID: "CS3380", Display: "Databases"}}, courses)
}

func Test_commandLine_exportLogs(t *testing.T) {
	cli := setup(t)
	stores, err := database.Open(context.Background(), cli.conf, cli.logger)
	require.NoError(t, err)
	cli.initServices(stores)

	lg1 := testutil.CreateLog(t, stores.Logs, "CS100", "10203040", "met with student")
	testutil.CreateLog(t, stores.Logs, "CS200", "10203040", "other course")
	lg3 := testutil.CreateLog(t, stores.Logs, "CS100", "11111111", "missed class")

	path := filepath.Join(t.TempDir(), "logs.xlsx")
	runCLITests(t, cli, []cliTest{
		{name: "no file", args: []string{"export-logs"}, wantErrStr: `required flag(s) "file" not set`},
		{name: "exported", args: []string{"export-logs", "--file", path, "--course", "CS100"}, wantOut: "2 log(s) exported"},
	})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(logsSheet)
	require.NoError(t, err)

	want := [][]string{
		{"ID", "Course", "UVU ID", "Date", "Text"},
		{lg1.ID, lg1.CourseID, lg1.UvuID, lg1.Date, lg1.Text},
		{lg3.ID, lg3.CourseID, lg3.UvuID, lg3.Date, lg3.Text},
	}
	assert.Equal(t, want, rows)

	// filters are exact
	n, err := cli.exportLogs(context.Background(), path, studentlog.QueryFilter{UvuID: "99999999"})
	require.NoError(t, err)
	assert.Zero(t, n)
}
