package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"sevsuctl/pkg/config"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sevsuctl",
	Short: "A CLI and TUI for the SevSU student portals",
	Long: `sevsuctl signs in to the Sevastopol State University portals through SSO,
shows the student profile and weekly timetable, and exports it to .ics or .xlsx.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log upstream requests to stderr")
}

func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadEndpoints reads SEVSU_* overrides and the saved settings.
func loadEndpoints() (config.Endpoints, *config.AppConfig, error) {
	e, err := config.LoadEndpoints()
	if err != nil {
		return config.Endpoints{}, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Endpoints{}, nil, err
	}
	return cfg.Apply(e), cfg, nil
}
