package clients

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
	updateCompany    string
	updateContact    string
	updateEmail      string
	updatePhone      string
	updateLinkedLead string
	updateManager    string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a client",
	Long:  `Updates a client. Only the flags given are sent; other fields keep their values.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)

		input, err := updateInput(cmd.Flags())
		if err != nil {
			return err
		}

		flow, err := newFlow(ctx, input.LinkedLeadID != nil || input.AssignedManagerID != nil)
		if err != nil {
			return err
		}
		if err := flow.Mount(ctx); err != nil {
			return err
		}
		if _, err := flow.OpenEdit(args[0]); err != nil {
			return err
		}
		client, err := flow.SubmitEdit(ctx, input)
		if err != nil {
			return err
		}

		if cfg.JSONOutput() {
			return ui.JSON(cmd.OutOrStdout(), client)
		}
		pterm.Success.Printf("Updated client %s (%s)\n", client.CompanyName, client.ID)
		return nil
	},
}

// updateInput builds a partial update from the flags that were set.
func updateInput(flags *pflag.FlagSet) (sdk.UpdateClientInput, error) {
	var input sdk.UpdateClientInput
	if flags.Changed("company") {
		input.CompanyName = sdk.Ptr(updateCompany)
	}
	if flags.Changed("contact") {
		input.ContactPerson = sdk.Ptr(updateContact)
	}
	if flags.Changed("email") {
		input.Email = sdk.Ptr(updateEmail)
	}
	if flags.Changed("phone") {
		input.Phone = sdk.Ptr(updatePhone)
	}
	if flags.Changed("linked-lead") {
		input.LinkedLeadID = sdk.Ptr(updateLinkedLead)
	}
	if flags.Changed("manager") {
		input.AssignedManagerID = sdk.Ptr(updateManager)
	}
	if input == (sdk.UpdateClientInput{}) {
		return input, errors.New("nothing to update: pass at least one of --company, --contact, --email, --phone, --linked-lead, --manager")
	}
	return input, nil
}

func init() {
	updateCmd.Flags().StringVar(&updateCompany, "company", "", "New company name")
	updateCmd.Flags().StringVar(&updateContact, "contact", "", "New contact person")
	updateCmd.Flags().StringVar(&updateEmail, "email", "", "New email")
	updateCmd.Flags().StringVar(&updatePhone, "phone", "", "New phone")
	updateCmd.Flags().StringVar(&updateLinkedLead, "linked-lead", "", "New linked lead ID")
	updateCmd.Flags().StringVar(&updateManager, "manager", "", "New account manager user ID")
}
