package leads

import (
	"errors"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	updateName       string
	updateEmail      string
	updatePhone      string
	updateStatus     string
	updateAssignedTo string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a lead",
	Long:  `Updates a lead. Only the flags given are sent; other fields keep their values.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		input, err := updateInput(cmd.Flags())
		if err != nil {
			return err
		}

		flow, err := newFlow(ctx, input.AssignedToID != nil)
		if err != nil {
			return err
		}
		if err := flow.Mount(ctx); err != nil {
			return err
		}
		if _, err := flow.OpenEdit(args[0]); err != nil {
			return err
		}
		lead, err := flow.SubmitEdit(ctx, input)
		if err != nil {
			return err
		}

		if cfg.JSONOutput() {
			return ui.JSON(cmd.OutOrStdout(), lead)
		}
		pterm.Success.Printf("Updated lead %s (%s)\n", lead.Name, lead.ID)
		return nil
	},
}

// updateInput builds a partial update from the flags that were set.
func updateInput(flags *pflag.FlagSet) (sdk.UpdateLeadInput, error) {
	var input sdk.UpdateLeadInput
	if flags.Changed("name") {
		input.Name = sdk.Ptr(updateName)
	}
	if flags.Changed("email") {
		input.Email = sdk.Ptr(updateEmail)
	}
	if flags.Changed("phone") {
		input.Phone = sdk.Ptr(updatePhone)
	}
	if flags.Changed("status") {
		status, err := parseStatus(updateStatus)
		if err != nil {
			return input, err
		}
		input.Status = &status
	}
	if flags.Changed("assigned-to") {
		input.AssignedToID = sdk.Ptr(updateAssignedTo)
	}
	if input == (sdk.UpdateLeadInput{}) {
		return input, errors.New("nothing to update: pass at least one of --name, --email, --phone, --status, --assigned-to")
	}
	return input, nil
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "New name")
	updateCmd.Flags().StringVar(&updateEmail, "email", "", "New email")
	updateCmd.Flags().StringVar(&updatePhone, "phone", "", "New phone")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "New status: NEW, CONTACTED, WON or LOST")
	updateCmd.Flags().StringVar(&updateAssignedTo, "assigned-to", "", "New assignee user ID")
}
