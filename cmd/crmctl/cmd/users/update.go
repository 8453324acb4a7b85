package users

import (
	"errors"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	updateName          string
	updateEmail         string
	updateMobile        string
	updateEnabled       bool
	updatePasswordStdin bool
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user account",
	Long: `Updates profile fields of a user account. Only the flags given are sent.
Use "crmctl users role" to change a role.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		input, err := updateInput(cmd.Flags())
		if err != nil {
			return err
		}
		if updatePasswordStdin {
			password, err := ui.ReadSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}
			input.Password = sdk.Ptr(password)
		}

		view, err := mountView(ctx)
		if err != nil {
			return err
		}
		if _, err := view.OpenEdit(args[0]); err != nil {
			return err
		}
		user, err := view.SubmitEdit(ctx, input)
		if err != nil {
			return err
		}

		if cfg.JSONOutput() {
			return ui.JSON(cmd.OutOrStdout(), user)
		}
		pterm.Success.Printf("Updated user %s (%s)\n", user.FullName, user.ID)
		return nil
	},
}

// updateInput builds a partial update from the flags that were set. The password is
// read separately since it comes from stdin.
func updateInput(flags *pflag.FlagSet) (sdk.UpdateUserInput, error) {
	var input sdk.UpdateUserInput
	if flags.Changed("name") {
		input.FullName = sdk.Ptr(updateName)
	}
	if flags.Changed("email") {
		input.Email = sdk.Ptr(updateEmail)
	}
	if flags.Changed("mobile") {
		input.MobileNumber = sdk.Ptr(updateMobile)
	}
	if flags.Changed("enabled") {
		input.Enabled = sdk.Ptr(updateEnabled)
	}
	if input == (sdk.UpdateUserInput{}) && !flags.Changed("password-stdin") {
		return input, errors.New("nothing to update: pass at least one of --name, --email, --mobile, --enabled, --password-stdin")
	}
	return input, nil
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "New full name")
	updateCmd.Flags().StringVar(&updateEmail, "email", "", "New email")
	updateCmd.Flags().StringVar(&updateMobile, "mobile", "", "New mobile number")
	updateCmd.Flags().BoolVar(&updateEnabled, "enabled", true, "Enable (true) or disable (false) the account")
	updateCmd.Flags().BoolVar(&updatePasswordStdin, "password-stdin", false, "Read a new password from stdin")
}
