package auth

import (
	"context"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/spf13/cobra"
)

// AuthCmd is the parent command for auth operations
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Commands for signing in and out of mycrm and checking the current session.`,
}

func init() {
	AuthCmd.AddCommand(config.Anonymous(loginCmd))
	AuthCmd.AddCommand(config.Anonymous(registerCmd))
	AuthCmd.AddCommand(config.Anonymous(logoutCmd))
	AuthCmd.AddCommand(statusCmd)
}

func sdkClient(ctx context.Context) (*sdk.APIClient, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}

func prompter(ctx context.Context) ui.Prompter {
	return ui.Prompter{NonInteractive: config.MustFromContext(ctx).NonInteractive}
}
