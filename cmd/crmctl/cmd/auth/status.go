package auth

import (
	"fmt"
	"time"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		session, err := cfg.ClientProvider.Session()
		if err != nil {
			return err
		}
		creds, err := session.Credentials()
		if err != nil {
			return fmt.Errorf("failed to read credentials: %w", err)
		}

		pterm.DefaultSection.Println("Authentication Status")
		pterm.Info.Printf("API: %s\n", cfg.APIURL)
		if cfg.ClientProvider.UsesEphemeralToken() {
			pterm.Info.Println("Credential: ephemeral token (--token / CRM_TOKEN)")
		} else {
			pterm.Info.Printf("Credential saved %s\n", ui.Ago(creds.SavedAt))
		}

		// Claims are informational; the server decides whether the token is valid.
		if claims, err := sdk.InspectToken(creds.AccessToken); err == nil {
			if exp := claims.ExpiresAt(); !exp.IsZero() {
				if exp.Before(time.Now()) {
					pterm.Warning.Printf("Token expired %s\n", ui.Ago(exp))
				} else {
					pterm.Info.Printf("Token expires %s (%s)\n", ui.Ago(exp), exp.Format(time.RFC1123))
				}
			}
		} else {
			cfg.Logger.Debug("token is not a JWT", cfg.Logger.Args("error", err))
		}

		me, err := cfg.ClientProvider.Caller(cmd.Context())
		if err != nil {
			return err
		}
		pterm.Success.Printf("Signed in as %s (%s)\n", me.FullName, me.Email)
		pterm.Info.Printf("Role: %s\n", ui.RoleBadge(me.RoleName()))
		return nil
	},
}
