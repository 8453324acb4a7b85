package configcmd

import (
	"fmt"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// ConfigCmd is the parent command for crmctl settings
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change crmctl settings",
	Long: `Settings are read from ~/.mycrm/config.toml (or $CRM_CONFIG), then CRM_*
environment variables, then command-line flags.`,
}

type view struct {
	APIURL         string `json:"apiUrl"`
	Output         string `json:"output"`
	LogFormat      string `json:"logFormat"`
	Debug          bool   `json:"debug"`
	NonInteractive bool   `json:"nonInteractive"`
	ConfigFile     string `json:"configFile"`
	TokenSource    string `json:"tokenSource"`
}

var viewCmd = config.Anonymous(&cobra.Command{
	Use:   "view",
	Short: "Show the resolved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		s := cfg.Settings

		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		file := path
		if s.Path == "" {
			file = path + " (not found, using defaults)"
		}
		source := "stored credentials"
		if cfg.ClientProvider.UsesEphemeralToken() {
			source = "--token / " + config.EnvToken
		}

		v := view{
			APIURL:         cfg.APIURL,
			Output:         cfg.Output,
			LogFormat:      s.LogFormat,
			Debug:          s.Debug,
			NonInteractive: cfg.NonInteractive,
			ConfigFile:     file,
			TokenSource:    source,
		}
		if cfg.JSONOutput() {
			return ui.JSON(cmd.OutOrStdout(), v)
		}
		return ui.Fields(cmd.OutOrStdout(), [][2]string{
			{"API URL", v.APIURL},
			{"Output", v.Output},
			{"Log format", v.LogFormat},
			{"Debug", fmt.Sprint(v.Debug)},
			{"Non-interactive", fmt.Sprint(v.NonInteractive)},
			{"Config file", v.ConfigFile},
			{"Token", v.TokenSource},
		})
	},
})

var setCmd = config.Anonymous(&cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a setting to the config file",
	Long:  `Saves one setting. Keys: api_url, output, log_format, debug, non_interactive.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		// Start from the file alone so environment and flag overrides are not persisted.
		s, err := config.ReadFile(path)
		if err != nil {
			return err
		}
		if err := s.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := s.Save(path); err != nil {
			return err
		}
		pterm.Success.Printf("Saved %s = %s to %s\n", args[0], args[1], path)
		return nil
	},
})

func init() {
	ConfigCmd.AddCommand(viewCmd)
	ConfigCmd.AddCommand(setCmd)
}
