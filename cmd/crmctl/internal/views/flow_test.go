package views

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/adityaj-eiosys/mycrm-frontend/internal/crmtest"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The SDK transport serves every screen; the Client entity is a separate type.
var (
	_ LeadAPI      = (*sdk.APIClient)(nil)
	_ ClientAPI    = (*sdk.APIClient)(nil)
	_ UserAPI      = (*sdk.APIClient)(nil)
	_ DirectoryAPI = (*sdk.APIClient)(nil)
)

func signedIn(t *testing.T, srv *crmtest.Server, u sdk.User) *sdk.APIClient {
	t.Helper()
	session := sdk.NewSession(sdk.NewMemoryStore(srv.Login(u.ID)))
	return sdk.NewClient(srv.URL, sdk.WithSession(session))
}

func stateNames[T any](states []State[T]) []string {
	names := make([]string, 0, len(states))
	for _, s := range states {
		names = append(names, s.Name())
	}
	return names
}

func TestLeadsFlow_CreateLifecycle(t *testing.T) {
	srv := crmtest.NewServer(t)
	sales := srv.SeedUser("Sam Sales", "sam@example.com", "pw", sdk.RoleSales)
	client := signedIn(t, srv, sales)
	ctx := context.Background()

	flow := NewLeadsFlow(client, NewDirectory([]sdk.User{sales}, nil), nil)
	var seen []State[sdk.Lead]
	flow.Observe(func(s State[sdk.Lead]) { seen = append(seen, s) })

	assert.IsType(t, Loading[sdk.Lead]{}, flow.State())
	require.NoError(t, flow.Mount(ctx))
	assert.IsType(t, Listing[sdk.Lead]{}, flow.State())
	assert.Empty(t, flow.Items())

	require.NoError(t, flow.OpenCreate())
	created, err := flow.SubmitCreate(ctx, sdk.CreateLeadInput{
		Name:         "Acme",
		Email:        "buyer@acme.test",
		Phone:        "555-0101",
		AssignedToID: sales.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, sdk.LeadStatusNew, created.Status)

	assert.Equal(t, []string{"loading", "listing", "form-open", "submitting", "listing"}, stateNames(seen))
	require.Len(t, flow.Items(), 1)
	assert.Equal(t, created.ID, flow.Items()[0].ID)
}

func TestLeadsFlow_SubmitRequiresOpenForm(t *testing.T) {
	srv := crmtest.NewServer(t)
	sales := srv.SeedUser("Sam Sales", "sam@example.com", "pw", sdk.RoleSales)
	flow := NewLeadsFlow(signedIn(t, srv, sales), nil, nil)
	ctx := context.Background()

	var seen []State[sdk.Lead]
	flow.Observe(func(s State[sdk.Lead]) { seen = append(seen, s) })

	input := sdk.CreateLeadInput{Name: "x", Email: "x@y.test", Phone: "1", AssignedToID: sales.ID}

	_, err := flow.SubmitCreate(ctx, input)
	assert.ErrorIs(t, err, ErrInvalidTransition, "cannot submit before mount")

	require.NoError(t, flow.Mount(ctx))
	_, err = flow.SubmitCreate(ctx, input)
	assert.ErrorIs(t, err, ErrInvalidTransition, "cannot submit without an open form")

	_, err = flow.SubmitEdit(ctx, sdk.UpdateLeadInput{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, flow.OpenCreate())
	_, err = flow.SubmitEdit(ctx, sdk.UpdateLeadInput{})
	assert.ErrorIs(t, err, ErrInvalidTransition, "edit submit needs an edit form")
	assert.ErrorIs(t, flow.OpenCreate(), ErrInvalidTransition, "form already open")

	for _, s := range seen {
		_, submitting := s.(Submitting[sdk.Lead])
		assert.False(t, submitting)
	}
	for _, r := range srv.Requests() {
		assert.NotEqual(t, http.MethodPost, r.Method)
	}
}

func TestLeadsFlow_ValidationKeepsFormOpen(t *testing.T) {
	srv := crmtest.NewServer(t)
	sales := srv.SeedUser("Sam Sales", "sam@example.com", "pw", sdk.RoleSales)
	flow := NewLeadsFlow(signedIn(t, srv, sales), NewDirectory([]sdk.User{sales}, nil), nil)
	ctx := context.Background()
	require.NoError(t, flow.Mount(ctx))
	require.NoError(t, flow.OpenCreate())
	srv.ResetRequests()

	tests := []struct {
		name  string
		input sdk.CreateLeadInput
	}{
		{name: "bad email", input: sdk.CreateLeadInput{Name: "A", Email: "nope", Phone: "1", AssignedToID: sales.ID}},
		{name: "unknown assignee", input: sdk.CreateLeadInput{Name: "A", Email: "a@b.test", Phone: "1", AssignedToID: "ghost"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := flow.SubmitCreate(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, sdk.IsValidation(err))

			form, ok := flow.State().(FormOpen[sdk.Lead])
			require.True(t, ok)
			assert.Equal(t, ModeCreate, form.Mode)
			assert.Equal(t, err, form.Err)
		})
	}
	assert.Empty(t, srv.Requests())

	require.NoError(t, flow.CancelForm())
	assert.IsType(t, Listing[sdk.Lead]{}, flow.State())
}

func TestLeadsFlow_ServerErrorShownInline(t *testing.T) {
	srv := crmtest.NewServer(t)
	sales := srv.SeedUser("Sam Sales", "sam@example.com", "pw", sdk.RoleSales)
	flow := NewLeadsFlow(signedIn(t, srv, sales), nil, nil)
	ctx := context.Background()
	require.NoError(t, flow.Mount(ctx))
	require.NoError(t, flow.OpenCreate())

	srv.FailOn(http.MethodPost, "/leads", http.StatusConflict, "Lead already exists")
	_, err := flow.SubmitCreate(ctx, sdk.CreateLeadInput{Name: "A", Email: "a@b.test", Phone: "1", AssignedToID: sales.ID})
	require.Error(t, err)

	form, ok := flow.State().(FormOpen[sdk.Lead])
	require.True(t, ok)
	require.Error(t, form.Err)
	assert.Equal(t, "Lead already exists", form.Err.Error())
}

func TestLeadsFlow_EditSendsOnlyChanges(t *testing.T) {
	srv := crmtest.NewServer(t)
	sales := srv.SeedUser("Sam Sales", "sam@example.com", "pw", sdk.RoleSales)
	lead := srv.SeedLead("Acme", "buyer@acme.test", sdk.LeadStatusNew, sales, sales)
	flow := NewLeadsFlow(signedIn(t, srv, sales), nil, nil)
	ctx := context.Background()
	require.NoError(t, flow.Mount(ctx))

	_, err := flow.OpenEdit("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	current, err := flow.OpenEdit(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", current.Name)

	form, ok := flow.State().(FormOpen[sdk.Lead])
	require.True(t, ok)
	assert.Equal(t, lead.ID, form.Target)

	updated, err := flow.SubmitEdit(ctx, sdk.UpdateLeadInput{Status: sdk.Ptr(sdk.LeadStatusContacted)})
	require.NoError(t, err)
	assert.Equal(t, sdk.LeadStatusContacted, updated.Status)

	var patch crmtest.RecordedRequest
	for _, r := range srv.Requests() {
		if r.Method == http.MethodPatch {
			patch = r
		}
	}
	assert.Equal(t, "/leads/"+lead.ID, patch.Path)
	assert.Equal(t, map[string]any{"status": "CONTACTED"}, patch.BodyFields())
	assert.Equal(t, sdk.LeadStatusContacted, flow.Items()[0].Status)
}

func TestFlow_MountFailureRendersEmpty(t *testing.T) {
	srv := crmtest.NewServer(t)
	sales := srv.SeedUser("Sam Sales", "sam@example.com", "pw", sdk.RoleSales)
	srv.SeedLead("Acme", "buyer@acme.test", sdk.LeadStatusNew, sales, sales)
	srv.FailOn(http.MethodGet, "/leads", http.StatusInternalServerError, "database unavailable")

	flow := NewLeadsFlow(signedIn(t, srv, sales), nil, nil)
	err := flow.Mount(context.Background())
	require.Error(t, err)

	failed, ok := flow.State().(Failed[sdk.Lead])
	require.True(t, ok)
	assert.Equal(t, "database unavailable", failed.Err.Error())
	assert.Empty(t, flow.Items())

	// A create form can still be opened from the failed list.
	assert.NoError(t, flow.OpenCreate())
}

func TestFlow_Delete(t *testing.T) {
	srv := crmtest.NewServer(t)
	sales := srv.SeedUser("Sam Sales", "sam@example.com", "pw", sdk.RoleSales)
	lead := srv.SeedLead("Acme", "buyer@acme.test", sdk.LeadStatusNew, sales, sales)
	flow := NewLeadsFlow(signedIn(t, srv, sales), nil, nil)
	ctx := context.Background()
	require.NoError(t, flow.Mount(ctx))

	t.Run("declined sends nothing", func(t *testing.T) {
		srv.ResetRequests()
		var prompt string
		deleted, err := flow.Delete(ctx, lead.ID, ConfirmFunc(func(p string) (bool, error) {
			prompt = p
			return false, nil
		}))
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Contains(t, prompt, "Acme")
		assert.Empty(t, srv.Requests())
	})

	t.Run("non-interactive refuses", func(t *testing.T) {
		srv.ResetRequests()
		_, err := flow.Delete(ctx, lead.ID, NonInteractive)
		assert.ErrorIs(t, err, ErrConfirmationRequired)
		assert.Empty(t, srv.Requests())
	})

	t.Run("server failure keeps the list", func(t *testing.T) {
		srv.FailOn(http.MethodDelete, "/leads/"+lead.ID, http.StatusForbidden, "Forbidden resource")
		defer srv.ClearFailures()

		deleted, err := flow.Delete(ctx, lead.ID, AlwaysConfirm)
		require.Error(t, err)
		assert.False(t, deleted)
		assert.True(t, sdk.IsForbidden(err))
		assert.Len(t, flow.Items(), 1)
	})

	t.Run("confirmed deletes and refetches", func(t *testing.T) {
		deleted, err := flow.Delete(ctx, lead.ID, AlwaysConfirm)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Empty(t, flow.Items())
		assert.IsType(t, Listing[sdk.Lead]{}, flow.State())
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := flow.Delete(ctx, "missing", AlwaysConfirm)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("confirmer error", func(t *testing.T) {
		srv.SeedLead("Other", "o@x.test", sdk.LeadStatusLost, sales, sales)
		require.NoError(t, flow.Mount(ctx))
		boom := errors.New("tty closed")
		_, err := flow.Delete(ctx, flow.Items()[0].ID, ConfirmFunc(func(string) (bool, error) { return false, boom }))
		assert.ErrorIs(t, err, boom)
	})
}

func TestClientsFlow_ReferenceChecks(t *testing.T) {
	srv := crmtest.NewServer(t)
	admin := srv.SeedUser("Ada Admin", "ada@example.com", "pw", sdk.RoleAdmin)
	lead := srv.SeedLead("Acme", "buyer@acme.test", sdk.LeadStatusWon, admin, admin)
	client := signedIn(t, srv, admin)
	ctx := context.Background()

	dir := LoadDirectory(ctx, client, true, nil)
	require.True(t, dir.HasUsers())
	require.True(t, dir.HasLeads())

	flow := NewClientsFlow(client, dir, nil)
	require.NoError(t, flow.Mount(ctx))
	require.NoError(t, flow.OpenCreate())

	input := sdk.CreateClientInput{
		CompanyName:       "Acme Inc",
		ContactPerson:     "Wile",
		Email:             "wile@acme.test",
		Phone:             "555",
		LinkedLeadID:      "no-such-lead",
		AssignedManagerID: admin.ID,
	}
	_, err := flow.SubmitCreate(ctx, input)
	var vErr *sdk.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "client", vErr.Entity)
	assert.Contains(t, vErr.Error(), "linkedLeadId")

	input.LinkedLeadID = lead.ID
	created, err := flow.SubmitCreate(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, created.LinkedLead)
	assert.Equal(t, lead.ID, created.LinkedLead.ID)

	_, err = flow.OpenEdit(created.ID)
	require.NoError(t, err)
	_, err = flow.SubmitEdit(ctx, sdk.UpdateClientInput{AssignedManagerID: sdk.Ptr("ghost")})
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "assignedManagerId")
}

func TestLoadDirectory_NonAdminSkipsUsers(t *testing.T) {
	srv := crmtest.NewServer(t)
	user := srv.SeedUser("Uma User", "uma@example.com", "pw", sdk.RoleUser)
	client := signedIn(t, srv, user)
	ctx := context.Background()

	dir := LoadDirectory(ctx, client, true, nil)
	assert.False(t, dir.HasUsers())
	assert.True(t, dir.HasLeads())

	// Unknown assignees pass locally and are left to the server.
	flow := NewLeadsFlow(client, dir, nil)
	require.NoError(t, flow.Mount(ctx))
	require.NoError(t, flow.OpenCreate())
	_, err := flow.SubmitCreate(ctx, sdk.CreateLeadInput{Name: "A", Email: "a@b.test", Phone: "1", AssignedToID: "ghost"})
	require.Error(t, err)
	assert.False(t, sdk.IsValidation(err))
	assert.Equal(t, http.StatusBadRequest, sdk.StatusCode(err))
}

func TestFlow_CancelFormRestoresFailedList(t *testing.T) {
	srv := crmtest.NewServer(t)
	sales := srv.SeedUser("Sam Sales", "sam@example.com", "pw", sdk.RoleSales)
	srv.FailOn(http.MethodGet, "/leads", http.StatusServiceUnavailable, "maintenance")

	flow := NewLeadsFlow(signedIn(t, srv, sales), nil, nil)
	require.Error(t, flow.Mount(context.Background()))
	require.NoError(t, flow.OpenCreate())

	form, ok := flow.State().(FormOpen[sdk.Lead])
	require.True(t, ok)
	require.Error(t, form.LoadErr)

	require.NoError(t, flow.CancelForm())
	failed, ok := flow.State().(Failed[sdk.Lead])
	require.True(t, ok, "cancel should return to the failed list, got %s", flow.State().Name())
	assert.Equal(t, "maintenance", failed.Err.Error())
}

func TestFlow_CancelFormReturnsToListing(t *testing.T) {
	srv := crmtest.NewServer(t)
	sales := srv.SeedUser("Sam Sales", "sam@example.com", "pw", sdk.RoleSales)
	srv.SeedLead("Acme", "buyer@acme.test", sdk.LeadStatusNew, sales, sales)

	flow := NewLeadsFlow(signedIn(t, srv, sales), nil, nil)
	require.NoError(t, flow.Mount(context.Background()))
	require.NoError(t, flow.OpenCreate())
	require.NoError(t, flow.CancelForm())

	listing, ok := flow.State().(Listing[sdk.Lead])
	require.True(t, ok)
	assert.Len(t, listing.Items, 1)
	assert.ErrorIs(t, flow.CancelForm(), ErrInvalidTransition)
}

func TestState_Visible(t *testing.T) {
	items := []string{"a", "b"}
	tests := []struct {
		state State[string]
		want  []string
	}{
		{state: Loading[string]{}, want: nil},
		{state: Listing[string]{Items: items}, want: items},
		{state: FormOpen[string]{Mode: ModeCreate, Items: items}, want: items},
		{state: Submitting[string]{Mode: ModeEdit, Target: "a", Items: items}, want: items},
		{state: Failed[string]{Err: errors.New("boom")}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.state.Name(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Visible())
		})
	}
}

func TestLoadDirectory_PartsFailIndependently(t *testing.T) {
	srv := crmtest.NewServer(t)
	admin := srv.SeedUser("Ana Admin", "ana@example.com", "pw", sdk.RoleAdmin)
	srv.FailOn(http.MethodGet, "/leads", http.StatusInternalServerError, "leads down")

	dir := LoadDirectory(context.Background(), signedIn(t, srv, admin), true, nil)
	assert.True(t, dir.HasUsers(), "a failed lead list must not drop the users")
	assert.False(t, dir.HasLeads())

	var paths []string
	for _, r := range srv.Requests() {
		paths = append(paths, r.Method+" "+r.Path)
	}
	assert.ElementsMatch(t, []string{"GET /users", "GET /leads"}, paths)
}
