package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/studentlogs/core/studentlog"
)

const logsSheet = "Logs"

var logsHeader = []interface{}{"ID", "Course", "UVU ID", "Date", "Text"}

func (cli *commandLine) exportLogsCmd() *cobra.Command {
	var path string
	var filter studentlog.QueryFilter

	cmd := &cobra.Command{
		Use:     "export-logs",
		Short:   "Export student logs to a spreadsheet",
		Args:    cobra.NoArgs,
		PreRunE: cli.connect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, err := cli.exportLogs(cmd.Context(), path, filter)
			if err != nil {
				return err
			}
			cmd.Printf("%d log(s) exported to %s.\n", count, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "Path of the .xlsx file to write")
	cmd.Flags().StringVar(&filter.CourseID, "course", "", "Only export logs of this course")
	cmd.Flags().StringVar(&filter.UvuID, "uvu", "", "Only export logs of this student")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// exportLogs writes the logs matching filter to a new spreadsheet, one row per log after a header row.
func (cli *commandLine) exportLogs(ctx context.Context, path string, filter studentlog.QueryFilter) (int, error) {
	logs, err := cli.logSvc.Filter(ctx, filter)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			cli.logger.Warn("closing spreadsheet", err)
		}
	}()

	if err = f.SetSheetName(f.GetSheetName(0), logsSheet); err != nil {
		return 0, errors.Wrap(err, "naming sheet")
	}
	if err = f.SetSheetRow(logsSheet, "A1", &logsHeader); err != nil {
		return 0, errors.Wrap(err, "writing header")
	}
	for i, lg := range logs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		row := []interface{}{lg.ID, lg.CourseID, lg.UvuID, lg.Date, lg.Text}
		if err = f.SetSheetRow(logsSheet, cell, &row); err != nil {
			return 0, errors.Wrapf(err, "writing log %s", lg.ID)
		}
	}

	if err = f.SaveAs(path); err != nil {
		return 0, errors.Wrap(err, "saving spreadsheet")
	}
	return len(logs), nil
}
