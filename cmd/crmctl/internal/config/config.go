package config

import (
	"context"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/client"
	"github.com/pterm/pterm"
)

type contextKey string

const configKey contextKey = "crmctl-config"

// GlobalConfig holds shared configuration for all crmctl commands.
// This is injected into the cobra command context by the root command's
// PersistentPreRunE hook and consumed by all subcommands.
type GlobalConfig struct {
	APIURL         string
	NonInteractive bool
	Output         string
	Logger         *pterm.Logger
	Settings       Settings
	ClientProvider *client.Provider
}

// JSONOutput reports whether commands should print JSON instead of tables.
func (c *GlobalConfig) JSONOutput() bool {
	return c.Output == OutputJSON
}

// InjectConfig adds config to the cobra command context.
func InjectConfig(ctx context.Context, cfg *GlobalConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from the cobra command context.
// Returns (nil, false) if config is not present.
func FromContext(ctx context.Context) (*GlobalConfig, bool) {
	cfg, ok := ctx.Value(configKey).(*GlobalConfig)
	return cfg, ok
}

// MustFromContext retrieves config from context or panics.
// Only for command RunE functions, where the root command has injected it.
func MustFromContext(ctx context.Context) *GlobalConfig {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("crmctl: config not found in context - this is a bug in crmctl")
	}
	return cfg
}
