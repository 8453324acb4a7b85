// Package access decides what a caller may do based on their role.
//
// The checks mirror what the API enforces so the CLI can refuse early; they are a
// convenience, not a security boundary.
package access

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
)

//go:embed model.conf
var modelContent string

//go:embed policy.csv
var policyContent string

// Action names a permission checked against the role grants.
type Action string

const (
	AdminPanel     Action = "admin:panel"
	LeadRead       Action = "lead:read"
	LeadWrite      Action = "lead:write"
	ClientRead     Action = "client:read"
	ClientWrite    Action = "client:write"
	UserReadSelf   Action = "user:read-self"
	UserList       Action = "user:list"
	UserCreate     Action = "user:create"
	UserUpdate     Action = "user:update"
	UserChangeRole Action = "user:change-role"
	UserDelete     Action = "user:delete"
)

// ErrAdminRequired is returned when a non-admin reaches an admin-only view.
var ErrAdminRequired = errors.New("access denied: admin privileges required")

// Policy evaluates role grants loaded from a casbin model and policy.
type Policy struct {
	enforcer *casbin.SyncedEnforcer
}

// NewPolicy builds a policy from a casbin model and CSV policy lines.
func NewPolicy(modelText, policyText string) (*Policy, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("parse access model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, stringadapter.NewAdapter(policyText))
	if err != nil {
		return nil, fmt.Errorf("create access enforcer: %w", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load access policies: %w", err)
	}
	return &Policy{enforcer: enforcer}, nil
}

var defaultPolicy = sync.OnceValue(func() *Policy {
	p, err := NewPolicy(modelContent, policyContent)
	if err != nil {
		panic(fmt.Sprintf("access: embedded policy is invalid: %v", err))
	}
	return p
})

// Default returns the policy compiled from the embedded grants.
func Default() *Policy { return defaultPolicy() }

// subject maps a role to its policy subject. Unknown roles have none.
func subject(role sdk.RoleName) (string, bool) {
	switch role {
	case sdk.RoleAdmin, sdk.RoleSales, sdk.RoleUser:
		return string(role), true
	default:
		return "", false
	}
}

// Allowed reports whether caller's role grants action. A nil caller is never allowed.
func (p *Policy) Allowed(caller *sdk.User, action Action) bool {
	if caller == nil {
		return false
	}
	sub, ok := subject(caller.RoleName())
	if !ok {
		return false
	}
	allowed, err := p.enforcer.Enforce(sub, string(action))
	if err != nil {
		return false
	}
	return allowed
}

// allowedOnOther additionally refuses actions aimed at the caller's own account.
func (p *Policy) allowedOnOther(caller *sdk.User, action Action, targetUserID string) bool {
	if caller == nil || targetUserID == "" || caller.ID == targetUserID {
		return false
	}
	return p.Allowed(caller, action)
}

// CanAccessAdminPanel reports whether caller's role grants the admin panel.
func (p *Policy) CanAccessAdminPanel(caller *sdk.User) bool {
	return p.Allowed(caller, AdminPanel)
}

// CanChangeRole reports whether caller may change the role of another user.
func (p *Policy) CanChangeRole(caller *sdk.User, targetUserID string) bool {
	return p.allowedOnOther(caller, UserChangeRole, targetUserID)
}

// CanDeleteUser reports whether caller may delete another user's account.
func (p *Policy) CanDeleteUser(caller *sdk.User, targetUserID string) bool {
	return p.allowedOnOther(caller, UserDelete, targetUserID)
}

// CanAccessAdminPanel is true iff the caller is an ADMIN.
func CanAccessAdminPanel(caller *sdk.User) bool {
	return Default().CanAccessAdminPanel(caller)
}

// CanChangeRole is true iff the caller is an ADMIN and the target is someone else.
func CanChangeRole(caller *sdk.User, targetUserID string) bool {
	return Default().CanChangeRole(caller, targetUserID)
}

// CanDeleteUser is true iff the caller is an ADMIN and the target is someone else.
func CanDeleteUser(caller *sdk.User, targetUserID string) bool {
	return Default().CanDeleteUser(caller, targetUserID)
}

func CanListUsers(caller *sdk.User) bool  { return Default().Allowed(caller, UserList) }
func CanCreateUser(caller *sdk.User) bool { return Default().Allowed(caller, UserCreate) }
func CanUpdateUser(caller *sdk.User) bool { return Default().Allowed(caller, UserUpdate) }

// RequireAdmin returns ErrAdminRequired unless the caller may open the admin panel.
func RequireAdmin(caller *sdk.User) error {
	if !CanAccessAdminPanel(caller) {
		return ErrAdminRequired
	}
	return nil
}
