package leads

import (
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/spf13/cobra"
)

var listFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads",
	Long: `Lists leads. --filter takes a bexpr expression over the JSON field names,
for example: status == "NEW" and assignedTo.email == "ana@example.com"`,
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
		// A failed fetch still renders, as an empty list.
		mountErr := flow.Mount(cmd.Context())
		leads := sdk.Apply(filter, flow.Items())

		if cfg.JSONOutput() {
			if leads == nil {
				leads = []sdk.Lead{}
			}
			if err := ui.JSON(cmd.OutOrStdout(), leads); err != nil {
				return err
			}
		} else if err := ui.LeadsTable(cmd.OutOrStdout(), leads); err != nil {
			return err
		}
		return mountErr
	},
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "bexpr filter expression (e.g. status == \"NEW\")")
}
