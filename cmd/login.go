package cmd

import (
	"fmt"

	"sevsuctl/pkg/login"
	"sevsuctl/pkg/portal"
	"sevsuctl/pkg/tui"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in through SevSU SSO and print the session token",
	Long: `Sign in with a headless Chrome, capture the timetable session and the IOT
bearer token, and print the composite token used by the schedule and export commands.
Missing credentials are prompted for. Set SEVSU_PASSWORD to skip the password prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, _, err := loadEndpoints()
		if err != nil {
			return err
		}

		creds, err := credentialsFromFlags(cmd)
		if err != nil {
			return err
		}

		res, err := tui.RunLogin(login.FromEndpoints(e, newLogger()), creds)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if res.Profile != nil {
			fmt.Println(tui.RenderProfile(res.Profile))
		}
		if !res.Authenticated() {
			return fmt.Errorf("%s (%v)", tui.ProblemMessage(res.Problem), res.Problem)
		}

		fmt.Println(res.Token.String())
		return nil
	},
}

func credentialsFromFlags(cmd *cobra.Command) (portal.Credentials, error) {
	username, _ := cmd.Flags().GetString("user")
	creds := portal.Credentials{
		Login:    username,
		Password: envPassword(),
	}
	return tui.PromptCredentials(creds)
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("user", "u", "", "SevSU login (defaults to the saved login)")
}
