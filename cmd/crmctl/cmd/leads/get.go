package leads

import (
	"fmt"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		crm, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		lead, err := crm.GetLead(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get lead: %w", err)
		}
		if cfg.JSONOutput() {
			return ui.JSON(cmd.OutOrStdout(), lead)
		}
		return ui.Fields(cmd.OutOrStdout(), ui.LeadFields(*lead))
	},
}
