package users

import (
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/spf13/cobra"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		me, err := cfg.ClientProvider.Caller(cmd.Context())
		if err != nil {
			return err
		}
		if cfg.JSONOutput() {
			return ui.JSON(cmd.OutOrStdout(), me)
		}
		return ui.Fields(cmd.OutOrStdout(), ui.UserFields(*me))
	},
}
