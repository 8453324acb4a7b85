package clients

import (
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/spf13/cobra"
)

var listFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	Long: `Lists clients. --filter takes a bexpr expression over the JSON field names,
for example: assignedManager.email == "ana@example.com"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		filter, err := sdk.ParseFilter(listFilter)
		if err != nil {
			return err
		}

		flow, err := newFlow(cmd.Context(), false)
		if err != nil {
			return err
		}
		mountErr := flow.Mount(cmd.Context())
		clients := sdk.Apply(filter, flow.Items())

		if cfg.JSONOutput() {
			if clients == nil {
				clients = []sdk.Client{}
			}
			if err := ui.JSON(cmd.OutOrStdout(), clients); err != nil {
				return err
			}
		} else if err := ui.ClientsTable(cmd.OutOrStdout(), clients); err != nil {
			return err
		}
		return mountErr
	},
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "bexpr filter expression (e.g. companyName == \"Globex\")")
}
