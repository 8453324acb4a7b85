package users

import (
	"fmt"
	"strings"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var roleCmd = &cobra.Command{
	Use:   "role <id> <role>",
	Short: "Change a user's role",
	Long: `Assigns ADMIN, SALES or USER to another user. You cannot change your own role.
The user has to sign in again before the new role applies.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		view, err := mountView(ctx)
		if err != nil {
			return err
		}
		role, ok := view.RoleByName(sdk.RoleName(strings.ToUpper(args[1])))
		if !ok {
			return fmt.Errorf("unknown role %q", args[1])
		}

		user, err := view.ChangeRole(ctx, args[0], role.ID)
		if err != nil {
			return err
		}

		if cfg.JSONOutput() {
			return ui.JSON(cmd.OutOrStdout(), user)
		}
		pterm.Success.Printf("%s is now %s\n", user.FullName, ui.RoleBadge(user.RoleName()))
		pterm.Warning.Println("The new role applies after the user signs in again.")
		return nil
	},
}
