package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sevsuctl/pkg/login"
	"sevsuctl/pkg/server"
	"sevsuctl/pkg/timetable"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the login, profile and schedule API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, _, err := loadEndpoints()
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if env := os.Getenv("PORT"); env != "" && !cmd.Flags().Changed("addr") {
			addr = ":" + env
		}

		if os.Getenv(gin.EnvGinMode) == "" {
			gin.SetMode(gin.ReleaseMode)
		}

		log := newLogger()
		if !verbose {
			log = slog.New(slog.NewTextHandler(os.Stderr, nil))
		}
		tt := timetable.NewClient(e.ScheduleURL, e.SemesterCode, e.RequestTimeout,
			timetable.WithCache(timetable.NewMemoryCache(e.CacheTTL)),
			timetable.WithLogger(log),
		)
		srv := server.New(login.FromEndpoints(e, log), tt, server.WithLogger(log))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8000", "Listen address (default $PORT if set)")
}
