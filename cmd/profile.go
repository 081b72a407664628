package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"sevsuctl/pkg/login"
	"sevsuctl/pkg/tui"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the student profile from the Moodle portal",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, _, err := loadEndpoints()
		if err != nil {
			return err
		}

		creds, err := credentialsFromFlags(cmd)
		if err != nil {
			return err
		}

		p, ok := tui.RunProfile(login.FromEndpoints(e, newLogger()), creds)
		if !ok {
			return fmt.Errorf("profile not found")
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		}

		fmt.Println(tui.RenderProfile(p))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringP("user", "u", "", "SevSU login (defaults to the saved login)")
	profileCmd.Flags().Bool("json", false, "Print the profile as JSON")
}
