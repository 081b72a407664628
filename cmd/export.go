package cmd

import (
	"fmt"
	"time"

	"sevsuctl/pkg/exporter"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Directly export a week of the timetable to an ICS or XLSX file",
	Long:  `Export one week of the timetable without using the interactive TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, cfg, err := loadEndpoints()
		if err != nil {
			return err
		}

		token, week, year, err := weekFlags(cmd, time.Now())
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = cfg.ExportFormat
		}
		if format == "" {
			format = exporter.FormatICS
		}
		if err := exporter.ValidateFormat(format); err != nil {
			return err
		}

		w, err := fetchWeek(newTimetableClient(cmd, e), token, week, year)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		output = exporter.FileName(output, format, w)

		if err := exporter.WriteFile(output, format, w); err != nil {
			return err
		}

		lessons := 0
		for _, d := range w.Days {
			lessons += len(d.Lessons)
		}
		fmt.Printf("Successfully exported %d lessons of week %d to %s\n", lessons, w.Week, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addWeekFlags(exportCmd)
	exportCmd.Flags().StringP("format", "f", "", "Export format: ics or xlsx (default from config, else ics)")
	exportCmd.Flags().StringP("output", "o", "", "Output file path (default schedule-<week>-<year>.<format>)")
}
