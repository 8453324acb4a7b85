package leads

import (
	"context"
	"fmt"
	"strings"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/views"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/spf13/cobra"
)

// LeadsCmd is the parent command for lead operations
var LeadsCmd = &cobra.Command{
	Use:     "leads",
	Aliases: []string{"lead"},
	Short:   "Manage leads",
	Long:    `Commands for listing, creating, updating and deleting sales leads.`,
}

func init() {
	LeadsCmd.AddCommand(listCmd)
	LeadsCmd.AddCommand(getCmd)
	LeadsCmd.AddCommand(createCmd)
	LeadsCmd.AddCommand(updateCmd)
	LeadsCmd.AddCommand(deleteCmd)
}

func sdkClient(ctx context.Context) (*sdk.APIClient, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}

// newFlow builds the leads flow, loading the user directory when withRefs is set.
func newFlow(ctx context.Context, withRefs bool) (*views.LeadsFlow, error) {
	cfg := config.MustFromContext(ctx)
	crm, err := sdkClient(ctx)
	if err != nil {
		return nil, err
	}

	var dir *views.Directory
	if withRefs {
		dir = views.LoadDirectory(ctx, crm, false, cfg.Logger)
	}
	return views.NewLeadsFlow(crm, dir, cfg.Logger), nil
}

func parseStatus(value string) (sdk.LeadStatus, error) {
	status := sdk.LeadStatus(strings.ToUpper(value))
	if !status.Valid() {
		return "", fmt.Errorf("invalid status %q: must be one of %v", value, sdk.LeadStatuses)
	}
	return status, nil
}
