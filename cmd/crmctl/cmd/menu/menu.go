package menu

import (
	"errors"
	"fmt"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/access"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// MenuCmd prints the navigation available to the signed-in user.
var MenuCmd = config.Anonymous(&cobra.Command{
	Use:   "menu",
	Short: "Show where you can go",
	Long: `Prints the pages available to you. Admin pages are listed only for admins.
Without a session only the sign-in commands are shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)
		out := cmd.OutOrStdout()

		if err := cfg.ClientProvider.RequireSession(); err != nil {
			if !errors.Is(err, sdk.ErrNotLoggedIn) {
				return err
			}
			fmt.Fprintln(out, "Not signed in.")
			fmt.Fprintln(out, "  Login     crmctl auth login")
			fmt.Fprintln(out, "  Register  crmctl auth register")
			return nil
		}

		caller, err := cfg.ClientProvider.Caller(ctx)
		if err != nil {
			pterm.Warning.Printf("Could not load your profile: %v\n", err)
			caller = nil
		}

		items := access.Navigation(caller)
		if cfg.JSONOutput() {
			return ui.JSON(out, items)
		}
		if caller != nil {
			fmt.Fprintf(out, "Signed in as %s <%s> %s\n", caller.FullName, caller.Email, ui.RoleBadge(caller.RoleName()))
		}
		pairs := make([][2]string, 0, len(items))
		for _, item := range items {
			pairs = append(pairs, [2]string{item.Label, item.Command})
		}
		return ui.Fields(out, pairs)
	},
})
