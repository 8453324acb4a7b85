package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/config"
	"github.com/adityaj-eiosys/mycrm-frontend/cmd/crmctl/internal/views"
	"github.com/adityaj-eiosys/mycrm-frontend/internal/crmtest"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/access"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	pterm.DisableOutput()
	os.Exit(m.Run())
}

type harness struct {
	api  *crmtest.Server
	home string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{config.EnvAPIURL, config.EnvToken, config.EnvNonInteractive, config.EnvDebug, config.EnvLogFormat, config.EnvOutput, config.EnvConfig} {
		t.Setenv(key, "")
	}
	api := crmtest.NewServer(t)
	t.Setenv(config.EnvAPIURL, api.URL)
	return &harness{api: api, home: home}
}

// resetFlags returns every flag to its default so runs do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	err := run(context.Background(), append([]string{"--non-interactive"}, args...), &stdout, &stderr)
	return stdout.String(), err
}

func (h *harness) login(t *testing.T, email, password string) {
	t.Helper()
	_, err := h.run(t, password+"\n", "auth", "login", "--email", email, "--password-stdin")
	require.NoError(t, err)
}

func TestLoginThenLeads(t *testing.T) {
	h := newHarness(t)
	sales := h.api.SeedUser("Sam Sales", "sam@example.com", "secret-pw", sdk.RoleSales)

	h.login(t, "sam@example.com", "secret-pw")
	assert.FileExists(t, filepath.Join(h.home, config.Dir, "credentials.json"))

	out, err := h.run(t, "", "leads", "create", "--name", "Acme", "--email", "buyer@acme.test", "--phone", "555-0101", "-o", "json")
	require.NoError(t, err)
	var created sdk.Lead
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, sdk.LeadStatusNew, created.Status)
	assert.Equal(t, sales.ID, created.AssignedTo.ID)

	out, err = h.run(t, "", "leads", "list", "-o", "json", "--filter", `status == "NEW"`)
	require.NoError(t, err)
	var listed []sdk.Lead
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	_, err = h.run(t, "", "auth", "logout")
	require.NoError(t, err)
	_, err = h.run(t, "", "leads", "list")
	assert.ErrorIs(t, err, sdk.ErrNotLoggedIn)
}

func TestCommandsRequireSession(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", "clients", "list")
	assert.ErrorIs(t, err, sdk.ErrNotLoggedIn)
	assert.Empty(t, h.api.Requests())

	out, err := h.run(t, "", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestLoginWrongPassword(t *testing.T) {
	h := newHarness(t)
	h.api.SeedUser("Ana Admin", "ana@example.com", "right", sdk.RoleAdmin)

	_, err := h.run(t, "wrong\n", "auth", "login", "--email", "ana@example.com", "--password-stdin")
	require.Error(t, err)
	assert.True(t, sdk.IsUnauthorized(err))
	assert.NoFileExists(t, filepath.Join(h.home, config.Dir, "credentials.json"))
}

func TestUsersAdminOnly(t *testing.T) {
	h := newHarness(t)
	h.api.SeedUser("Sam Sales", "sam@example.com", "pw-sales", sdk.RoleSales)
	h.login(t, "sam@example.com", "pw-sales")
	h.api.ResetRequests()

	_, err := h.run(t, "", "users", "list")
	assert.ErrorIs(t, err, access.ErrAdminRequired)
	for _, req := range h.api.Requests() {
		assert.NotEqual(t, "/users", req.Path, "no user data may be requested for a non-admin")
	}

	out, err := h.run(t, "", "menu", "-o", "json")
	require.NoError(t, err)
	assert.NotContains(t, out, "crmctl users list")
}

func TestUsersAdminFlows(t *testing.T) {
	h := newHarness(t)
	admin := h.api.SeedUser("Ana Admin", "ana@example.com", "pw-admin", sdk.RoleAdmin)
	other := h.api.SeedUser("Uma User", "uma@example.com", "pw-user", sdk.RoleUser)
	h.login(t, "ana@example.com", "pw-admin")

	out, err := h.run(t, "", "users", "list", "-o", "json")
	require.NoError(t, err)
	var users []sdk.User
	require.NoError(t, json.Unmarshal([]byte(out), &users))
	assert.Len(t, users, 2)

	t.Run("own role is refused locally", func(t *testing.T) {
		h.api.ResetRequests()
		_, err := h.run(t, "", "users", "role", admin.ID, "USER")
		assert.ErrorIs(t, err, views.ErrSelfRoleChange)
		for _, req := range h.api.Requests() {
			assert.NotEqual(t, http.MethodPatch, req.Method)
		}
	})

	t.Run("other role changes", func(t *testing.T) {
		out, err := h.run(t, "", "users", "role", other.ID, "sales", "-o", "json")
		require.NoError(t, err)
		var updated sdk.User
		require.NoError(t, json.Unmarshal([]byte(out), &updated))
		assert.Equal(t, sdk.RoleSales, updated.Role.Name)
	})

	t.Run("delete needs confirmation when non-interactive", func(t *testing.T) {
		_, err := h.run(t, "", "users", "delete", other.ID)
		assert.ErrorIs(t, err, views.ErrConfirmationRequired)

		_, err = h.run(t, "", "users", "delete", other.ID, "--yes")
		require.NoError(t, err)
	})

	t.Run("own account cannot be deleted", func(t *testing.T) {
		_, err := h.run(t, "", "users", "delete", admin.ID, "--yes")
		assert.ErrorIs(t, err, views.ErrSelfDelete)
	})
}

func TestEphemeralToken(t *testing.T) {
	h := newHarness(t)
	user := h.api.SeedUser("Uma User", "uma@example.com", "pw", sdk.RoleUser)
	tok := h.api.Login(user.ID)

	out, err := h.run(t, "", "users", "me", "--token", tok, "-o", "json")
	require.NoError(t, err)
	var me sdk.User
	require.NoError(t, json.Unmarshal([]byte(out), &me))
	assert.Equal(t, user.ID, me.ID)

	last, ok := h.api.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "Bearer "+tok, last.Authorization)
	assert.NoFileExists(t, filepath.Join(h.home, config.Dir, "credentials.json"))
}

func TestConfigSet(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", "config", "set", "output", "json")
	require.NoError(t, err)

	saved, err := config.ReadFile(filepath.Join(h.home, config.Dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.OutputJSON, saved.Output)
	assert.Equal(t, sdk.DefaultBaseURL, saved.APIURL, "environment overrides are not persisted")

	_, err = h.run(t, "", "config", "set", "colour", "blue")
	assert.ErrorContains(t, err, "unknown setting")
}
