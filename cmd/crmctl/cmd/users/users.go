package users

import (
	"context"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/views"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/spf13/cobra"
)

// UsersCmd is the parent command for user administration
var UsersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Manage user accounts (admin)",
	Long: `Commands for listing, creating, updating and deleting user accounts and
assigning roles. Everything except "users me" requires the ADMIN role.`,
}

func init() {
	UsersCmd.AddCommand(listCmd)
	UsersCmd.AddCommand(meCmd)
	UsersCmd.AddCommand(createCmd)
	UsersCmd.AddCommand(updateCmd)
	UsersCmd.AddCommand(roleCmd)
	UsersCmd.AddCommand(deleteCmd)
}

func sdkClient(ctx context.Context) (*sdk.APIClient, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}

// mountView resolves the caller and mounts the admin users view. Non-admins get
// access.ErrAdminRequired before any user data is requested.
func mountView(ctx context.Context) (*views.UsersView, error) {
	cfg := config.MustFromContext(ctx)
	crm, err := sdkClient(ctx)
	if err != nil {
		return nil, err
	}
	caller, err := cfg.ClientProvider.Caller(ctx)
	if err != nil {
		return nil, err
	}

	view := views.NewUsersView(crm, cfg.Logger)
	if err := view.Mount(ctx, caller); err != nil {
		return view, err
	}
	return view, nil
}
