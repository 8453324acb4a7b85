package clients

import (
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		flow, err := newFlow(ctx, false)
		if err != nil {
			return err
		}
		if err := flow.Mount(ctx); err != nil {
			return err
		}

		deleted, err := flow.Delete(ctx, args[0], views.ConfirmerFor(deleteYes, cfg.NonInteractive))
		if err != nil {
			return err
		}
		if !deleted {
			pterm.Info.Println("Aborted; nothing was deleted.")
			return nil
		}
		pterm.Success.Printf("Deleted client %s\n", args[0])
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking for confirmation")
}
