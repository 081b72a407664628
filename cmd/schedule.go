package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"sevsuctl/pkg/config"
	"sevsuctl/pkg/portal"
	"sevsuctl/pkg/schedule"
	"sevsuctl/pkg/timetable"
	"sevsuctl/pkg/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the timetable for a week",
	Long: `Fetch one week of the timetable with a session token from "sevsuctl login"
(or SEVSU_TOKEN) and print it. Week and year default to the current ISO week.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, _, err := loadEndpoints()
		if err != nil {
			return err
		}

		token, week, year, err := weekFlags(cmd, time.Now())
		if err != nil {
			return err
		}

		client := newTimetableClient(cmd, e)

		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			doc, err := client.FetchRaw(context.Background(), token.TimetableToken, week, year)
			if err != nil {
				return scheduleError(err)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}

		w, err := fetchWeek(client, token, week, year)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(w)
		}

		fmt.Print(tui.RenderWeek(w))
		return nil
	},
}

func addWeekFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("token", "t", "", "Session token from sevsuctl login (default $SEVSU_TOKEN)")
	cmd.Flags().IntP("week", "w", 0, "ISO week number (default current week)")
	cmd.Flags().IntP("year", "y", 0, "ISO year of the week (default current)")
	cmd.Flags().Bool("no-cache", false, "Bypass the on-disk week cache")
}

// weekFlags resolves the token and the week to fetch.
func weekFlags(cmd *cobra.Command, now time.Time) (portal.SessionToken, int, int, error) {
	raw, _ := cmd.Flags().GetString("token")
	if raw == "" {
		raw = os.Getenv("SEVSU_TOKEN")
	}
	token := portal.ParseSessionToken(raw)
	if token.Empty() {
		return portal.SessionToken{}, 0, 0, errors.New("a session token is required: run sevsuctl login or pass --token")
	}

	week, _ := cmd.Flags().GetInt("week")
	year, _ := cmd.Flags().GetInt("year")
	currentWeek, currentYear := schedule.CurrentWeek(now)
	if week == 0 {
		week = currentWeek
	}
	if year == 0 {
		year = currentYear
	}
	if week < 1 || week > 53 {
		return portal.SessionToken{}, 0, 0, fmt.Errorf("week must be between 1 and 53, got %d", week)
	}
	return token, week, year, nil
}

func newTimetableClient(cmd *cobra.Command, e config.Endpoints) *timetable.Client {
	opts := []timetable.Option{timetable.WithLogger(newLogger())}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		opts = append(opts, timetable.WithCache(timetable.NewDiskCache(e.CacheTTL)))
	}
	return timetable.NewClient(e.ScheduleURL, e.SemesterCode, e.RequestTimeout, opts...)
}

func fetchWeek(client *timetable.Client, token portal.SessionToken, week, year int) (schedule.Week, error) {
	var w schedule.Week
	var err error

	_ = spinner.New().
		Title(fmt.Sprintf("Загрузка недели %d, %d...", week, year)).
		Action(func() {
			w, err = client.FetchWeek(context.Background(), token.TimetableToken, week, year)
		}).
		Run()

	if err != nil {
		return schedule.Week{}, scheduleError(err)
	}
	return w, nil
}

func scheduleError(err error) error {
	var se *timetable.StatusError
	if errors.As(err, &se) {
		return fmt.Errorf("session token expired, run sevsuctl login again: %w", err)
	}
	return fmt.Errorf("failed to fetch schedule: %w", err)
}

func envPassword() string {
	return strings.TrimSpace(os.Getenv("SEVSU_PASSWORD"))
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	addWeekFlags(scheduleCmd)
	scheduleCmd.Flags().Bool("json", false, "Print the normalized week as JSON")
	scheduleCmd.Flags().Bool("raw", false, "Print the upstream response without normalizing it")
}
