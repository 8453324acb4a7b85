package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAPIURL, EnvToken, EnvNonInteractive, EnvDebug, EnvLogFormat, EnvOutput, EnvConfig} {
		t.Setenv(key, "")
	}
}

func TestLoadSettings_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_url = \"https://file.example\"\noutput = \"json\"\n"), 0600))

	t.Run("defaults without file", func(t *testing.T) {
		s, err := LoadSettings(filepath.Join(dir, "missing.toml"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:4000", s.APIURL)
		assert.Equal(t, OutputTable, s.Output)
		assert.Empty(t, s.Path)
	})

	t.Run("file over defaults", func(t *testing.T) {
		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "https://file.example", s.APIURL)
		assert.Equal(t, OutputJSON, s.Output)
		assert.Equal(t, path, s.Path)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "https://env.example")
		t.Setenv(EnvToken, "tok")
		t.Setenv(EnvNonInteractive, "1")
		t.Setenv(EnvDebug, "1")

		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "https://env.example", s.APIURL)
		assert.Equal(t, "tok", s.Token)
		assert.True(t, s.NonInteractive)
		assert.True(t, s.Debug)
	})
}

func TestLoadSettings_CorruptFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_url = "), 0600))

	_, err := LoadSettings(path)
	assert.Error(t, err)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Settings) {}},
		{name: "https", mutate: func(s *Settings) { s.APIURL = "https://crm.example.com/api" }},
		{name: "ftp url", mutate: func(s *Settings) { s.APIURL = "ftp://crm.example.com" }, wantErr: "http or https"},
		{name: "no host", mutate: func(s *Settings) { s.APIURL = "http://" }, wantErr: "http or https"},
		{name: "bad output", mutate: func(s *Settings) { s.Output = "yaml" }, wantErr: "output format"},
		{name: "bad log format", mutate: func(s *Settings) { s.LogFormat = "xml" }, wantErr: "log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	s := DefaultSettings()
	s.APIURL = "https://saved.example"
	s.Token = "never-written"
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "never-written")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example", loaded.APIURL)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvAPIURL)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CRM_API_URL=https://dotenv.example\n"), 0600))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "https://dotenv.example", os.Getenv(EnvAPIURL))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogFormatJSON, false)
	logger.Debug("hidden")
	logger.Info("shown", logger.Args("key", "value"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"key":"value"`)
}

func TestReadFile_IgnoresEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvOutput, OutputJSON)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_url = \"https://file.example\"\n"), 0600))

	s, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example", s.APIURL)
	assert.Equal(t, OutputTable, s.Output)
	assert.Equal(t, path, s.Path)

	missing, err := ReadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), missing)
}

func TestSettings_Set(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(t *testing.T, s Settings)
		wantErr    string
	}{
		{key: "api_url", value: "https://crm.example", check: func(t *testing.T, s Settings) {
			assert.Equal(t, "https://crm.example", s.APIURL)
		}},
		{key: "output", value: "json", check: func(t *testing.T, s Settings) {
			assert.Equal(t, OutputJSON, s.Output)
		}},
		{key: "non_interactive", value: "true", check: func(t *testing.T, s Settings) {
			assert.True(t, s.NonInteractive)
		}},
		{key: "debug", value: "maybe", wantErr: "want true or false"},
		{key: "output", value: "yaml", wantErr: "invalid output format"},
		{key: "api_url", value: "ftp://crm.example", wantErr: "invalid API URL"},
		{key: "token", value: "abc", wantErr: "unknown setting"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s := DefaultSettings()
			err := s.Set(tt.key, tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}
