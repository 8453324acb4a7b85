package roles

import (
	"fmt"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/access"
	"github.com/spf13/cobra"
)

// RolesCmd is the parent command for role operations
var RolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Inspect roles",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the roles users can hold",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		caller, err := cfg.ClientProvider.Caller(ctx)
		if err != nil {
			return err
		}
		if err := access.RequireAdmin(caller); err != nil {
			return err
		}

		crm, err := cfg.ClientProvider.SDKClient(ctx)
		if err != nil {
			return err
		}
		roles, err := crm.ListRoles(ctx)
		if err != nil {
			return fmt.Errorf("failed to list roles: %w", err)
		}

		if cfg.JSONOutput() {
			return ui.JSON(cmd.OutOrStdout(), roles)
		}
		return ui.RolesTable(cmd.OutOrStdout(), roles)
	},
}

func init() {
	RolesCmd.AddCommand(listCmd)
}
