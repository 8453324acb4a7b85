package users

import (
	"fmt"
	"strings"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	createName          string
	createEmail         string
	createMobile        string
	createRole          string
	createDisabled      bool
	createPasswordStdin bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long: `Creates a user account with the given role (ADMIN, SALES or USER; default USER).
Use --password-stdin to pipe the initial password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)
		p := ui.Prompter{NonInteractive: cfg.NonInteractive}

		view, err := mountView(ctx)
		if err != nil {
			return err
		}

		roleName := sdk.RoleName(strings.ToUpper(createRole))
		role, ok := view.RoleByName(roleName)
		if !ok {
			return fmt.Errorf("unknown role %q", createRole)
		}

		input := sdk.CreateUserInput{RoleID: role.ID, Enabled: sdk.Ptr(!createDisabled)}
		if input.FullName, err = p.Text("Full name", createName); err != nil {
			return err
		}
		if input.Email, err = p.Text("Email", createEmail); err != nil {
			return err
		}
		if input.MobileNumber, err = p.Text("Mobile number", createMobile); err != nil {
			return err
		}
		if createPasswordStdin {
			input.Password, err = ui.ReadSecret(cmd.InOrStdin())
		} else {
			input.Password, err = p.Password("Password", "")
		}
		if err != nil {
			return err
		}

		if err := view.OpenCreate(); err != nil {
			return err
		}
		user, err := view.SubmitCreate(ctx, input)
		if err != nil {
			return err
		}

		if cfg.JSONOutput() {
			return ui.JSON(cmd.OutOrStdout(), user)
		}
		pterm.Success.Printf("Created user %s (%s) as %s\n", user.FullName, user.ID, ui.RoleBadge(user.RoleName()))
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Full name")
	createCmd.Flags().StringVar(&createEmail, "email", "", "Email address")
	createCmd.Flags().StringVar(&createMobile, "mobile", "", "Mobile number")
	createCmd.Flags().StringVar(&createRole, "role", string(sdk.RoleUser), "Role name: ADMIN, SALES or USER")
	createCmd.Flags().BoolVar(&createDisabled, "disabled", false, "Create the account disabled")
	createCmd.Flags().BoolVar(&createPasswordStdin, "password-stdin", false, "Read the password from stdin")
}
