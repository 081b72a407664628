package cmd

import (
	"sevsuctl/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to sign in, browse weeks and export schedules interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, _, err := loadEndpoints()
		if err != nil {
			return err
		}
		return tui.NewApp(e, newLogger()).Run()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
