package sdk

import "time"

// RoleName is the closed set of permission tiers a user can hold.
type RoleName string

const (
	RoleAdmin RoleName = "ADMIN"
	RoleSales RoleName = "SALES"
	RoleUser  RoleName = "USER"
)

// RoleNames lists every known role in display order.
var RoleNames = []RoleName{RoleAdmin, RoleSales, RoleUser}

// Valid reports whether r is one of the known roles.
func (r RoleName) Valid() bool {
	switch r {
	case RoleAdmin, RoleSales, RoleUser:
		return true
	default:
		return false
	}
}

func (r RoleName) String() string { return string(r) }

// Role is a named permission tier. Users reference roles by ID.
type Role struct {
	ID          string   `json:"id"`
	Name        RoleName `json:"name"`
	Description string   `json:"description,omitempty"`
}

// UserRef is the embedded form of a user inside leads and clients.
type UserRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// LeadRef is the embedded form of a lead inside a client.
type LeadRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// User is an account of the CRM. Disabled users are kept, not deleted.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	Role         Role      `json:"role"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RoleName returns the user's role, defaulting to USER when the server sent none.
func (u *User) RoleName() RoleName {
	if u == nil || u.Role.Name == "" {
		return RoleUser
	}
	return u.Role.Name
}

// Ref returns the embedded reference form of u.
func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, FullName: u.FullName, Email: u.Email}
}

// LeadStatus is the sales-pipeline status of a lead. Any status may follow any other.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusWon       LeadStatus = "WON"
	LeadStatusLost      LeadStatus = "LOST"
)

// LeadStatuses lists every lead status in pipeline order.
var LeadStatuses = []LeadStatus{LeadStatusNew, LeadStatusContacted, LeadStatusWon, LeadStatusLost}

// Valid reports whether s is a known lead status.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusWon, LeadStatusLost:
		return true
	default:
		return false
	}
}

func (s LeadStatus) String() string { return string(s) }

// Lead is a prospective customer.
type Lead struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Status     LeadStatus `json:"status"`
	AssignedTo UserRef    `json:"assignedTo"`
	CreatedBy  UserRef    `json:"createdBy"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Ref returns the embedded reference form of l.
func (l Lead) Ref() LeadRef {
	return LeadRef{ID: l.ID, Name: l.Name, Email: l.Email}
}

// Client is a confirmed customer, optionally derived from a lead.
type Client struct {
	ID              string    `json:"id"`
	CompanyName     string    `json:"companyName"`
	ContactPerson   string    `json:"contactPerson"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	LinkedLead      *LeadRef  `json:"linkedLead,omitempty"`
	AssignedManager UserRef   `json:"assignedManager"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// LoginInput holds credentials for POST /auth/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput holds the self sign-up payload for POST /auth/register.
type RegisterInput struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
	RoleID       string `json:"roleId,omitempty"`
}

// AuthUser is the user summary returned next to an access token.
type AuthUser struct {
	ID           string   `json:"id"`
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	MobileNumber string   `json:"mobileNumber"`
	Role         RoleName `json:"role"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	User        AuthUser `json:"user"`
}

// CreateUserInput is the payload for POST /users.
type CreateUserInput struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
	RoleID       string `json:"roleId"`
	Enabled      *bool  `json:"enabled,omitempty"`
}

// UpdateUserInput is a partial update for PATCH /users/{id}. Nil fields are not sent.
type UpdateUserInput struct {
	FullName     *string `json:"fullName,omitempty"`
	Email        *string `json:"email,omitempty"`
	MobileNumber *string `json:"mobileNumber,omitempty"`
	Password     *string `json:"password,omitempty"`
	RoleID       *string `json:"roleId,omitempty"`
	Enabled      *bool   `json:"enabled,omitempty"`
}

// CreateLeadInput is the payload for POST /leads. An empty Status is sent as NEW.
type CreateLeadInput struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Status       LeadStatus `json:"status,omitempty"`
	AssignedToID string     `json:"assignedToId"`
}

// UpdateLeadInput is a partial update for PATCH /leads/{id}.
type UpdateLeadInput struct {
	Name         *string     `json:"name,omitempty"`
	Email        *string     `json:"email,omitempty"`
	Phone        *string     `json:"phone,omitempty"`
	Status       *LeadStatus `json:"status,omitempty"`
	AssignedToID *string     `json:"assignedToId,omitempty"`
}

// CreateClientInput is the payload for POST /clients.
type CreateClientInput struct {
	CompanyName       string `json:"companyName"`
	ContactPerson     string `json:"contactPerson"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	LinkedLeadID      string `json:"linkedLeadId,omitempty"`
	AssignedManagerID string `json:"assignedManagerId"`
}

// UpdateClientInput is a partial update for PATCH /clients/{id}.
type UpdateClientInput struct {
	CompanyName       *string `json:"companyName,omitempty"`
	ContactPerson     *string `json:"contactPerson,omitempty"`
	Email             *string `json:"email,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	LinkedLeadID      *string `json:"linkedLeadId,omitempty"`
	AssignedManagerID *string `json:"assignedManagerId,omitempty"`
}

// Ptr returns a pointer to v. Handy for building partial updates.
func Ptr[T any](v T) *T { return &v }
