package views

import (
	"context"
	"net/http"
	"testing"

	"github.com/adityaj-eiosys/mycrm-frontend/internal/crmtest"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/access"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountedUsersView(t *testing.T) (*crmtest.Server, *UsersView, sdk.User, sdk.User) {
	t.Helper()
	srv := crmtest.NewServer(t)
	admin := srv.SeedUser("Ada Admin", "ada@example.com", "pw", sdk.RoleAdmin)
	sales := srv.SeedUser("Sam Sales", "sam@example.com", "pw", sdk.RoleSales)

	view := NewUsersView(signedIn(t, srv, admin), nil)
	require.NoError(t, view.Mount(context.Background(), &admin))
	return srv, view, admin, sales
}

func TestUsersView_MountRequiresAdmin(t *testing.T) {
	for _, role := range []sdk.RoleName{sdk.RoleSales, sdk.RoleUser} {
		t.Run(string(role), func(t *testing.T) {
			srv := crmtest.NewServer(t)
			caller := srv.SeedUser("Not Admin", "na@example.com", "pw", role)
			srv.ResetRequests()

			view := NewUsersView(signedIn(t, srv, caller), nil)
			err := view.Mount(context.Background(), &caller)
			assert.ErrorIs(t, err, access.ErrAdminRequired)
			assert.Empty(t, srv.Requests())
			assert.IsType(t, Loading[sdk.User]{}, view.State())
		})
	}

	t.Run("nil caller", func(t *testing.T) {
		srv := crmtest.NewServer(t)
		view := NewUsersView(sdk.NewClient(srv.URL), nil)
		assert.ErrorIs(t, view.Mount(context.Background(), nil), access.ErrAdminRequired)
	})
}

func TestUsersView_MountLoadsUsersAndRoles(t *testing.T) {
	srv, view, admin, _ := mountedUsersView(t)

	assert.Len(t, view.Items(), 2)
	assert.Len(t, view.Roles(), 3)
	assert.True(t, view.IsCaller(admin.ID))

	paths := map[string]bool{}
	for _, r := range srv.Requests() {
		paths[r.Path] = true
	}
	assert.True(t, paths["/users"])
	assert.True(t, paths["/roles"])
}

func TestUsersView_MountFailure(t *testing.T) {
	srv := crmtest.NewServer(t)
	admin := srv.SeedUser("Ada Admin", "ada@example.com", "pw", sdk.RoleAdmin)
	srv.FailOn(http.MethodGet, "/roles", http.StatusInternalServerError, "roles unavailable")

	view := NewUsersView(signedIn(t, srv, admin), nil)
	err := view.Mount(context.Background(), &admin)
	require.Error(t, err)
	assert.IsType(t, Failed[sdk.User]{}, view.State())
	assert.Empty(t, view.Items())
}

func TestUsersView_ChangeRole(t *testing.T) {
	srv, view, admin, sales := mountedUsersView(t)
	ctx := context.Background()

	t.Run("self change is refused before any request", func(t *testing.T) {
		srv.ResetRequests()
		adminRole, ok := view.RoleByName(sdk.RoleSales)
		require.True(t, ok)

		_, err := view.ChangeRole(ctx, admin.ID, adminRole.ID)
		assert.ErrorIs(t, err, ErrSelfRoleChange)
		assert.Empty(t, srv.Requests())
	})

	t.Run("other user", func(t *testing.T) {
		srv.ResetRequests()
		userRole, ok := view.RoleByName(sdk.RoleUser)
		require.True(t, ok)

		updated, err := view.ChangeRole(ctx, sales.ID, userRole.ID)
		require.NoError(t, err)
		assert.Equal(t, sdk.RoleUser, updated.RoleName())

		local, ok := view.Find(sales.ID)
		require.True(t, ok)
		assert.Equal(t, userRole, local.Role)

		reqs := srv.Requests()
		require.Len(t, reqs, 1, "role change does not refetch")
		assert.Equal(t, "/users/"+sales.ID+"/role", reqs[0].Path)
		assert.Equal(t, map[string]any{"roleId": userRole.ID}, reqs[0].BodyFields())
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := view.ChangeRole(ctx, "missing", "role-user")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUsersView_Delete(t *testing.T) {
	srv, view, admin, sales := mountedUsersView(t)
	ctx := context.Background()

	t.Run("self delete is refused before any prompt", func(t *testing.T) {
		srv.ResetRequests()
		prompted := false
		_, err := view.Delete(ctx, admin.ID, ConfirmFunc(func(string) (bool, error) {
			prompted = true
			return true, nil
		}))
		assert.ErrorIs(t, err, ErrSelfDelete)
		assert.True(t, IsAccessError(err))
		assert.False(t, prompted)
		assert.Empty(t, srv.Requests())
	})

	t.Run("other user", func(t *testing.T) {
		deleted, err := view.Delete(ctx, sales.ID, AlwaysConfirm)
		require.NoError(t, err)
		assert.True(t, deleted)
		require.Len(t, view.Items(), 1)
		assert.Equal(t, admin.ID, view.Items()[0].ID)
	})
}

func TestUsersView_CreateUser(t *testing.T) {
	_, view, _, _ := mountedUsersView(t)
	ctx := context.Background()

	salesRole, ok := view.RoleByName(sdk.RoleSales)
	require.True(t, ok)

	require.NoError(t, view.OpenCreate())
	created, err := view.SubmitCreate(ctx, sdk.CreateUserInput{
		FullName:     "Nia New",
		Email:        "nia@example.com",
		MobileNumber: "555-0133",
		Password:     "pw",
		RoleID:       salesRole.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, sdk.RoleSales, created.RoleName())
	assert.Len(t, view.Items(), 3)
}
