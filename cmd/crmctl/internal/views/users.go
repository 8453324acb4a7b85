package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/adityaj-eiosys/mycrm-frontend/pkg/access"
	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"
)

// UserAPI is the subset of the SDK used by the users screen.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]sdk.User, error)
	ListRoles(ctx context.Context) ([]sdk.Role, error)
	CreateUser(ctx context.Context, input sdk.CreateUserInput) (*sdk.User, error)
	UpdateUser(ctx context.Context, id string, input sdk.UpdateUserInput) (*sdk.User, error)
	UpdateUserRole(ctx context.Context, id, roleID string) (*sdk.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UsersFlow is the generic flow specialised to users.
type UsersFlow = Flow[sdk.User, sdk.CreateUserInput, sdk.UpdateUserInput]

// UsersView is the admin-only user management screen.
type UsersView struct {
	*UsersFlow

	api    UserAPI
	caller *sdk.User
	roles  []sdk.Role
	logger *pterm.Logger
}

// NewUsersView returns a view in the Loading state.
func NewUsersView(api UserAPI, logger *pterm.Logger) *UsersView {
	flow := NewFlow(Ops[sdk.User, sdk.CreateUserInput, sdk.UpdateUserInput]{
		Entity:   "user",
		List:     api.ListUsers,
		Create:   api.CreateUser,
		Update:   api.UpdateUser,
		Delete:   api.DeleteUser,
		ID:       func(u sdk.User) string { return u.ID },
		Describe: func(u sdk.User) string { return u.FullName + " <" + u.Email + ">" },
		ValidateCreate: func(in sdk.CreateUserInput) error {
			return sdk.Validate(sdk.SchemaCreateUser, in)
		},
		ValidateUpdate: func(in sdk.UpdateUserInput) error {
			return sdk.Validate(sdk.SchemaUpdateUser, in)
		},
	}, logger)
	return &UsersView{UsersFlow: flow, api: api, logger: flow.logger}
}

// Mount checks that caller is an admin, then loads users and roles in parallel.
// Non-admins get access.ErrAdminRequired and nothing is requested.
func (v *UsersView) Mount(ctx context.Context, caller *sdk.User) error {
	if err := access.RequireAdmin(caller); err != nil {
		return err
	}
	v.caller = caller
	v.enter(Loading[sdk.User]{})

	var users []sdk.User
	var roles []sdk.Role
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = v.api.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		roles, err = v.api.ListRoles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		v.logger.Error("failed to load users", v.logger.Args("error", err))
		v.enter(Failed[sdk.User]{Err: err})
		return fmt.Errorf("failed to load users: %w", err)
	}

	v.roles = roles
	v.enter(Listing[sdk.User]{Items: users})
	return nil
}

// Caller is the admin the view was mounted for.
func (v *UsersView) Caller() *sdk.User { return v.caller }

// Roles returns the roles loaded at mount.
func (v *UsersView) Roles() []sdk.Role { return v.roles }

// RoleByName looks up a loaded role.
func (v *UsersView) RoleByName(name sdk.RoleName) (sdk.Role, bool) {
	return sdk.FindRole(v.roles, name)
}

// IsCaller reports whether id is the signed-in admin.
func (v *UsersView) IsCaller(id string) bool {
	return v.caller != nil && v.caller.ID == id
}

// ChangeRole assigns roleID to the user. The loaded record is updated from the role list
// without refetching; the user has to sign in again for the new role to take effect.
func (v *UsersView) ChangeRole(ctx context.Context, userID, roleID string) (*sdk.User, error) {
	if !access.CanChangeRole(v.caller, userID) {
		return nil, v.denied(userID, ErrSelfRoleChange)
	}
	if _, ok := v.state.(Listing[sdk.User]); !ok {
		return nil, v.invalid("change role of")
	}
	target, ok := v.Find(userID)
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	updated, err := v.api.UpdateUserRole(ctx, userID, roleID)
	if err != nil {
		v.logger.Error("role change failed", v.logger.Args("user", userID, "error", err))
		return nil, fmt.Errorf("failed to change role: %w", err)
	}

	if role, found := v.roleByID(roleID); found {
		target.Role = role
	} else {
		target.Role = updated.Role
	}
	v.replace(userID, target)
	return &target, nil
}

// Delete removes another user after confirmation. Deleting yourself is refused before any
// prompt or request.
func (v *UsersView) Delete(ctx context.Context, userID string, confirm Confirmer) (bool, error) {
	if !access.CanDeleteUser(v.caller, userID) {
		return false, v.denied(userID, ErrSelfDelete)
	}
	return v.UsersFlow.Delete(ctx, userID, confirm)
}

func (v *UsersView) denied(userID string, self error) error {
	if v.IsCaller(userID) {
		return self
	}
	if userID == "" {
		return fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}
	return access.ErrAdminRequired
}

func (v *UsersView) roleByID(id string) (sdk.Role, bool) {
	for _, r := range v.roles {
		if r.ID == id {
			return r, true
		}
	}
	return sdk.Role{}, false
}

// IsAccessError reports whether err came from a client-side permission check.
func IsAccessError(err error) bool {
	return errors.Is(err, access.ErrAdminRequired) ||
		errors.Is(err, ErrSelfRoleChange) ||
		errors.Is(err, ErrSelfDelete)
}
