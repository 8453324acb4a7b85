package clients

import (
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	createCompany    string
	createContact    string
	createEmail      string
	createPhone      string
	createLinkedLead string
	createManager    string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a client",
	Long: `Creates a client, optionally linked to the lead it came from. The account
manager defaults to the signed-in user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)
		p := ui.Prompter{NonInteractive: cfg.NonInteractive}

		input := sdk.CreateClientInput{LinkedLeadID: createLinkedLead, AssignedManagerID: createManager}
		var err error
		if input.CompanyName, err = p.Text("Company name", createCompany); err != nil {
			return err
		}
		if input.ContactPerson, err = p.Text("Contact person", createContact); err != nil {
			return err
		}
		if input.Email, err = p.Text("Email", createEmail); err != nil {
			return err
		}
		if input.Phone, err = p.Text("Phone", createPhone); err != nil {
			return err
		}
		if input.AssignedManagerID == "" {
			me, err := cfg.ClientProvider.Caller(ctx)
			if err != nil {
				return err
			}
			input.AssignedManagerID = me.ID
		}

		flow, err := newFlow(ctx, true)
		if err != nil {
			return err
		}
		_ = flow.Mount(ctx)
		if err := flow.OpenCreate(); err != nil {
			return err
		}
		client, err := flow.SubmitCreate(ctx, input)
		if err != nil {
			return err
		}

		if cfg.JSONOutput() {
			return ui.JSON(cmd.OutOrStdout(), client)
		}
		pterm.Success.Printf("Created client %s (%s)\n", client.CompanyName, client.ID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createCompany, "company", "", "Company name")
	createCmd.Flags().StringVar(&createContact, "contact", "", "Contact person")
	createCmd.Flags().StringVar(&createEmail, "email", "", "Contact email")
	createCmd.Flags().StringVar(&createPhone, "phone", "", "Contact phone")
	createCmd.Flags().StringVar(&createLinkedLead, "linked-lead", "", "ID of the lead this client came from")
	createCmd.Flags().StringVar(&createManager, "manager", "", "Account manager user ID (default: you)")
}
