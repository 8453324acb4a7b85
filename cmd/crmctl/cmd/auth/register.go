package auth

import (
	"fmt"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	registerName          string
	registerEmail         string
	registerMobile        string
	registerRoleID        string
	registerPasswordStdin bool
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := prompter(cmd.Context())

		input := sdk.RegisterInput{RoleID: registerRoleID}
		var err error
		if input.FullName, err = p.Text("Full name", registerName); err != nil {
			return err
		}
		if input.Email, err = p.Text("Email", registerEmail); err != nil {
			return err
		}
		if input.MobileNumber, err = p.Text("Mobile number", registerMobile); err != nil {
			return err
		}
		if input.Password, err = readPassword(cmd, p, registerPasswordStdin); err != nil {
			return err
		}

		crm, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		resp, err := crm.Register(cmd.Context(), input)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		pterm.Success.Printf("Account created for %s (%s)\n", resp.User.FullName, resp.User.Email)
		pterm.Info.Printf("Role: %s\n", ui.RoleBadge(resp.User.Role))
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email")
	registerCmd.Flags().StringVar(&registerMobile, "mobile", "", "Mobile number")
	registerCmd.Flags().StringVar(&registerRoleID, "role-id", "", "Role ID (server default when empty)")
	registerCmd.Flags().BoolVar(&registerPasswordStdin, "password-stdin", false, "Read the password from stdin")
}
