package clients

import (
	"context"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/views"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/spf13/cobra"
)

// ClientsCmd is the parent command for client operations
var ClientsCmd = &cobra.Command{
	Use:     "clients",
	Aliases: []string{"client"},
	Short:   "Manage clients",
	Long:    `Commands for listing, creating, updating and deleting client companies.`,
}

func init() {
	ClientsCmd.AddCommand(listCmd)
	ClientsCmd.AddCommand(getCmd)
	ClientsCmd.AddCommand(createCmd)
	ClientsCmd.AddCommand(updateCmd)
	ClientsCmd.AddCommand(deleteCmd)
}

func sdkClient(ctx context.Context) (*sdk.APIClient, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}

// newFlow builds the clients flow, loading users and leads when withRefs is set.
func newFlow(ctx context.Context, withRefs bool) (*views.ClientsFlow, error) {
	cfg := config.MustFromContext(ctx)
	crm, err := sdkClient(ctx)
	if err != nil {
		return nil, err
	}

	var dir *views.Directory
	if withRefs {
		dir = views.LoadDirectory(ctx, crm, true, cfg.Logger)
	}
	return views.NewClientsFlow(crm, dir, cfg.Logger), nil
}
