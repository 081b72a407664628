package cmd

import (
	"fmt"
	"strings"

	"sevsuctl/pkg/config"
	"sevsuctl/pkg/exporter"
	"sevsuctl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sevsuctl configuration",
	Long:  "View or edit your local settings (default login, semester code, export format, accent color).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if !flags.Changed("login") && !flags.Changed("semester") && !flags.Changed("format") && !flags.Changed("accent") {
			// If no flags are given, launch the interactive TUI flow
			return tui.RunConfigTUI()
		}

		if flags.Changed("login") {
			cfg.Login, _ = flags.GetString("login")
		}
		if flags.Changed("semester") {
			semester, _ := flags.GetString("semester")
			if err := tui.ValidateSemester(semester); err != nil {
				return err
			}
			cfg.SemesterCode = strings.TrimSpace(semester)
		}
		if flags.Changed("format") {
			format, _ := flags.GetString("format")
			if format != exporter.FormatICS && format != exporter.FormatXLSX {
				return fmt.Errorf("unknown export format %q", format)
			}
			cfg.ExportFormat = format
		}
		if flags.Changed("accent") {
			cfg.AccentColor, _ = flags.GetString("accent")
		}

		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Print(tui.DescribeConfig(cfg))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringP("login", "l", "", "Default SevSU login")
	configCmd.Flags().StringP("semester", "s", "", "Semester code sent to the timetable (e.g. 25-26, empty to derive from the date)")
	configCmd.Flags().StringP("format", "f", "", "Default export format (ics or xlsx)")
	configCmd.Flags().StringP("accent", "a", "", "Accent color (ANSI number or #RRGGBB)")
}
