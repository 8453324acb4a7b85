package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"

	LogFormatText = "text"
	LogFormatJSON = "json"

	// Dir is the per-user directory under $HOME holding config and credentials.
	Dir = ".mycrm"
)

// Environment variables read by LoadSettings.
const (
	EnvAPIURL         = "CRM_API_URL"
	EnvToken          = "CRM_TOKEN"
	EnvNonInteractive = "CRM_NON_INTERACTIVE"
	EnvDebug          = "CRM_DEBUG"
	EnvLogFormat      = "CRM_LOG_FORMAT"
	EnvOutput         = "CRM_OUTPUT"
	EnvConfig         = "CRM_CONFIG"
)

// Settings is the resolved crmctl configuration, before flag overrides.
type Settings struct {
	APIURL         string `toml:"api_url"`
	Output         string `toml:"output"`
	LogFormat      string `toml:"log_format"`
	Debug          bool   `toml:"debug"`
	NonInteractive bool   `toml:"non_interactive"`

	// Token is only taken from the environment; it is never written to the config file.
	Token string `toml:"-"`
	// Path is the config file that was read, empty when none existed.
	Path string `toml:"-"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		APIURL:    sdk.DefaultBaseURL,
		Output:    OutputTable,
		LogFormat: LogFormatText,
	}
}

// HomeDir returns ~/.mycrm.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, Dir), nil
}

// ConfigPath returns $CRM_CONFIG or ~/.mycrm/config.toml.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadDotEnv loads variables from the given .env files (default ./.env) without
// overriding variables already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// LoadSettings resolves defaults, then the TOML file at path (a missing file is fine),
// then environment variables.
func LoadSettings(path string) (Settings, error) {
	s, err := ReadFile(path)
	if err != nil {
		return s, err
	}
	s.applyEnv()
	return s, nil
}

// ReadFile returns the defaults overlaid with the TOML file at path, ignoring the
// environment. A missing file yields the defaults with an empty Path.
func ReadFile(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Keys lists the settings `crmctl config set` accepts.
var Keys = []string{"api_url", "output", "log_format", "debug", "non_interactive"}

// Set assigns one file-backed setting by its TOML key.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "api_url":
		s.APIURL = value
	case "output":
		s.Output = value
	case "log_format":
		s.LogFormat = value
	case "debug", "non_interactive":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: want true or false", value, key)
		}
		if key == "debug" {
			s.Debug = b
		} else {
			s.NonInteractive = b
		}
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	return s.Validate()
}

func (s *Settings) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		s.APIURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		s.Token = v
	}
	if os.Getenv(EnvNonInteractive) == "1" {
		s.NonInteractive = true
	}
	if os.Getenv(EnvDebug) == "1" {
		s.Debug = true
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		s.LogFormat = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		s.Output = v
	}
}

// Validate rejects settings crmctl cannot run with.
func (s Settings) Validate() error {
	u, err := url.Parse(s.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", s.APIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API URL %q: must be an http or https URL", s.APIURL)
	}
	switch s.Output {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("invalid output format %q: must be %s or %s", s.Output, OutputTable, OutputJSON)
	}
	switch s.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: must be %s or %s", s.LogFormat, LogFormatText, LogFormatJSON)
	}
	return nil
}

// Save writes the file-backed settings to path with owner-only permissions.
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# crmctl configuration")
	fmt.Fprintln(file, "")
	if err := toml.NewEncoder(file).Encode(s); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// NewLogger builds the stderr logger for the given format. debug lowers the level.
func NewLogger(w io.Writer, format string, debug bool) *pterm.Logger {
	level := pterm.LogLevelInfo
	if debug {
		level = pterm.LogLevelDebug
	}
	logger := pterm.DefaultLogger.WithLevel(level).WithWriter(w)
	if strings.EqualFold(format, LogFormatJSON) {
		logger = logger.WithFormatter(pterm.LogFormatterJSON)
	}
	return logger
}
