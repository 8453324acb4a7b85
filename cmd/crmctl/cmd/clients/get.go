package clients

import (
	"fmt"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		crm, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		client, err := crm.GetClient(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}
		if cfg.JSONOutput() {
			return ui.JSON(cmd.OutOrStdout(), client)
		}
		return ui.Fields(cmd.OutOrStdout(), ui.ClientFields(*client))
	},
}
