package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/course"
)

func (cli *commandLine) addCourseCmd() *cobra.Command {
	var nc course.NewCourse

	cmd := &cobra.Command{
		Use:     "add-course",
		Short:   "Create a course",
		Args:    cobra.NoArgs,
		PreRunE: cli.connect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			crs, err := cli.courseSvc.Create(cmd.Context(), nc)
			if err != nil {
				return err
			}
			cmd.Printf("Course %q (%s) created.\n", crs.ID, crs.Display)
			return nil
		},
	}
	cmd.Flags().StringVar(&nc.ID, "id", "", "Course ID, e.g. CS4690")
	cmd.Flags().StringVar(&nc.Display, "display", "", "Course display name")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("display")
	return cmd
}

func (cli *commandLine) importCoursesCmd() *cobra.Command {
	var path, sheet string

	cmd := &cobra.Command{
		Use:     "import-courses",
		Short:   "Import courses from a spreadsheet (column A: id, column B: display; row 1 is a header)",
		Args:    cobra.NoArgs,
		PreRunE: cli.connect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = file.Close() }()

			res, err := cli.importCourses(cmd.Context(), file, sheet)
			if err != nil {
				return err
			}
			for _, msg := range res.skipped {
				cmd.Println("skipped " + msg)
			}
			cmd.Printf("%d course(s) imported, %d skipped.\n", res.imported, len(res.skipped))
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "Path to the .xlsx file")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to read (defaults to the first one)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

type importResult struct {
	imported int
	skipped  []string
}

// importCourses creates a course per spreadsheet row. Incomplete rows and rejected courses are skipped.
func (cli *commandLine) importCourses(ctx context.Context, r io.Reader, sheet string) (importResult, error) {
	var res importResult

	f, err := excelize.OpenReader(r)
	if err != nil {
		return res, errors.Wrap(err, "opening spreadsheet")
	}
	defer func() {
		if err := f.Close(); err != nil {
			cli.logger.Warn("closing spreadsheet", err)
		}
	}()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return res, errors.Wrapf(err, "reading sheet %q", sheet)
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}

		var nc course.NewCourse
		if len(row) > 0 {
			nc.ID = core.CleanString(row[0])
		}
		if len(row) > 1 {
			nc.Display = core.CleanString(row[1])
		}
		if nc.ID == "" || nc.Display == "" {
			res.skipped = append(res.skipped, fmt.Sprintf("row %d: missing id or display", i+1))
			continue
		}

		if _, err = cli.courseSvc.Create(ctx, nc); err != nil {
			var vErrs validator.ValidationErrors
			var appErr *core.ValidationError
			if errors.As(err, &vErrs) || errors.As(err, &appErr) {
				res.skipped = append(res.skipped, fmt.Sprintf("row %d (%s): %v", i+1, nc.ID, err))
				continue
			}
			return res, errors.Wrapf(err, "importing row %d", i+1)
		}
		res.imported++
	}
	return res, nil
}
