package users

import (
	"errors"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/access"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/spf13/cobra"
)

var listFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	Long: `Lists every user account with its role. --filter takes a bexpr expression,
for example: role.name == "SALES" and enabled == true`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		filter, err := sdk.ParseFilter(listFilter)
		if err != nil {
			return err
		}

		view, err := mountView(cmd.Context())
		if errors.Is(err, access.ErrAdminRequired) || view == nil {
			return err
		}
		users := sdk.Apply(filter, view.Items())

		if cfg.JSONOutput() {
			if users == nil {
				users = []sdk.User{}
			}
			if jsonErr := ui.JSON(cmd.OutOrStdout(), users); jsonErr != nil {
				return jsonErr
			}
			return err
		}

		callerID := ""
		if c := view.Caller(); c != nil {
			callerID = c.ID
		}
		if tableErr := ui.UsersTable(cmd.OutOrStdout(), users, callerID); tableErr != nil {
			return tableErr
		}
		return err
	},
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "bexpr filter expression (e.g. role.name == \"ADMIN\")")
}
