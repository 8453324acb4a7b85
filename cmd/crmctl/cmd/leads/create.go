package leads

import (
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	createName       string
	createEmail      string
	createPhone      string
	createStatus     string
	createAssignedTo string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a lead",
	Long: `Creates a lead. The status defaults to NEW and the assignee to the signed-in
user. Missing fields are prompted for unless --non-interactive is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)
		p := ui.Prompter{NonInteractive: cfg.NonInteractive}

		input := sdk.CreateLeadInput{AssignedToID: createAssignedTo}
		var err error
		if input.Name, err = p.Text("Name", createName); err != nil {
			return err
		}
		if input.Email, err = p.Text("Email", createEmail); err != nil {
			return err
		}
		if input.Phone, err = p.Text("Phone", createPhone); err != nil {
			return err
		}
		if createStatus != "" {
			if input.Status, err = parseStatus(createStatus); err != nil {
				return err
			}
		}
		if input.AssignedToID == "" {
			me, err := cfg.ClientProvider.Caller(ctx)
			if err != nil {
				return err
			}
			input.AssignedToID = me.ID
		}

		flow, err := newFlow(ctx, true)
		if err != nil {
			return err
		}
		// The form opens over a failed list too; the failure is already logged.
		_ = flow.Mount(ctx)
		if err := flow.OpenCreate(); err != nil {
			return err
		}
		lead, err := flow.SubmitCreate(ctx, input)
		if err != nil {
			return err
		}

		if cfg.JSONOutput() {
			return ui.JSON(cmd.OutOrStdout(), lead)
		}
		pterm.Success.Printf("Created lead %s (%s)\n", lead.Name, lead.ID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Lead name")
	createCmd.Flags().StringVar(&createEmail, "email", "", "Lead email")
	createCmd.Flags().StringVar(&createPhone, "phone", "", "Lead phone")
	createCmd.Flags().StringVar(&createStatus, "status", "", "Status: NEW, CONTACTED, WON or LOST (default NEW)")
	createCmd.Flags().StringVar(&createAssignedTo, "assigned-to", "", "Assignee user ID (default: you)")
}
