package auth

import (
	"fmt"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	loginEmail         string
	loginPasswordStdin bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to mycrm",
	Long: `Signs in with email and password and stores the returned access token in
~/.mycrm/credentials.json. Missing values are prompted for unless --non-interactive
is set; use --password-stdin to pipe the password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		p := prompter(cmd.Context())

		email, err := p.Text("Email", loginEmail)
		if err != nil {
			return err
		}
		password, err := readPassword(cmd, p, loginPasswordStdin)
		if err != nil {
			return err
		}

		crm, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}
		resp, err := crm.Login(cmd.Context(), sdk.LoginInput{Email: email, Password: password})
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if cfg.ClientProvider.UsesEphemeralToken() {
			pterm.Warning.Println("A token was given with --token or CRM_TOKEN; the new session is not saved.")
		}
		pterm.Success.Printf("Logged in as %s (%s)\n", resp.User.FullName, resp.User.Email)
		pterm.Info.Printf("Role: %s\n", ui.RoleBadge(resp.User.Role))
		return nil
	},
}

func readPassword(cmd *cobra.Command, p ui.Prompter, fromStdin bool) (string, error) {
	if fromStdin {
		return ui.ReadSecret(cmd.InOrStdin())
	}
	return p.Password("Password", "")
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read the password from stdin")
}
