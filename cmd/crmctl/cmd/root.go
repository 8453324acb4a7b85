package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/cmd/auth"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/cmd/clients"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/cmd/configcmd"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/cmd/leads"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/cmd/menu"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/cmd/roles"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/cmd/users"
	internalauth "github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/auth"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/client"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/access"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

var (
	apiURL         string
	token          string
	nonInteractive bool
	debug          bool
	logFormat      string
	output         string
)

// openStore opens the file-backed credential store. Tests may replace it.
var openStore client.StoreFactory = func() (sdk.CredentialStore, error) {
	store, err := internalauth.NewFileStore()
	if err != nil {
		return nil, err
	}
	return store, nil
}

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "mycrm CLI - leads, clients and users from the terminal",
	Long: `crmctl is the command-line front-end for mycrm. Use it to sign in, manage
leads and clients, and (as an admin) manage user accounts and roles.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		settings, err := config.LoadSettings(path)
		if err != nil {
			return err
		}
		applyFlags(cmd, &settings)
		if err := settings.Validate(); err != nil {
			return err
		}

		logger := config.NewLogger(cmd.ErrOrStderr(), settings.LogFormat, settings.Debug)
		provider := client.NewProvider(settings.APIURL, openStore)
		provider.SetLogger(logger)
		provider.SetUserAgent("crmctl/" + Version)
		if settings.Token != "" {
			provider.SetBearerToken(settings.Token)
		}

		cfg := &config.GlobalConfig{
			APIURL:         settings.APIURL,
			NonInteractive: settings.NonInteractive,
			Output:         settings.Output,
			Logger:         logger,
			Settings:       settings,
			ClientProvider: provider,
		}
		cmd.SetContext(config.InjectConfig(cmd.Context(), cfg))

		if config.RequiresSession(cmd) {
			return provider.RequireSession()
		}
		return nil
	},
}

// applyFlags layers explicitly set flags over the resolved settings.
func applyFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		s.APIURL = apiURL
	}
	if flags.Changed("token") {
		s.Token = token
	}
	if flags.Changed("non-interactive") {
		s.NonInteractive = nonInteractive
	}
	if flags.Changed("debug") {
		s.Debug = debug
	}
	if flags.Changed("log-format") {
		s.LogFormat = logFormat
	}
	if flags.Changed("output") {
		s.Output = output
	}
}

// Execute runs the root command
func Execute() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.ExecuteContext(ctx)
}

func reportError(err error) {
	pterm.Error.Println(err)
	switch {
	case errors.Is(err, access.ErrAdminRequired):
		pterm.Info.Println("Run `crmctl menu` to see the pages available to you.")
	case sdk.IsUnauthorized(err):
		pterm.Info.Println("Your session was rejected; run `crmctl auth login` to sign in again.")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", sdk.DefaultBaseURL, fmt.Sprintf("CRM API base URL (also set via %s)", config.EnvAPIURL))
	rootCmd.PersistentFlags().StringVar(&token, "token", "", fmt.Sprintf("Bearer token to use instead of stored credentials (also set via %s)", config.EnvToken))
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, fmt.Sprintf("Disable interactive prompts (also set via %s=1)", config.EnvNonInteractive))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, fmt.Sprintf("Log API requests (also set via %s=1)", config.EnvDebug))
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", config.LogFormatText, "Log format: text or json")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", config.OutputTable, "Output format: table or json")

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(leads.LeadsCmd)
	rootCmd.AddCommand(clients.ClientsCmd)
	rootCmd.AddCommand(users.UsersCmd)
	rootCmd.AddCommand(roles.RolesCmd)
	rootCmd.AddCommand(menu.MenuCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
}
