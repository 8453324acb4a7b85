package auth

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from mycrm",
	RunE: func(cmd *cobra.Command, args []string) error {
		crm, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		if err := crm.Logout(); err != nil {
			return fmt.Errorf("failed to delete credentials: %w", err)
		}

		pterm.Success.Println("Logged out successfully")
		pterm.Info.Println("Run `crmctl auth login` to sign in again.")
		return nil
	},
}
