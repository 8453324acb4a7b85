package users

import (
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Long:  `Deletes another user's account. You cannot delete your own account.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		view, err := mountView(ctx)
		if err != nil {
			return err
		}
		deleted, err := view.Delete(ctx, args[0], views.ConfirmerFor(deleteYes, cfg.NonInteractive))
		if err != nil {
			return err
		}
		if !deleted {
			pterm.Info.Println("Aborted; nothing was deleted.")
			return nil
		}
		pterm.Success.Printf("Deleted user %s\n", args[0])
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking for confirmation")
}
