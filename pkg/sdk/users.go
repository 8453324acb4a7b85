package sdk

import "context"

// Me returns the caller's own user record.
func (c *APIClient) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every user. The server allows this for admins only.
func (c *APIClient) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user by ID.
func (c *APIClient) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.get(ctx, resourcePath("/users", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user account with the given role.
func (c *APIClient) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	if err := Validate(SchemaCreateUser, input); err != nil {
		return nil, err
	}
	var user User
	if err := c.post(ctx, "/users", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update; only non-nil fields are sent.
func (c *APIClient) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*User, error) {
	if err := Validate(SchemaUpdateUser, input); err != nil {
		return nil, err
	}
	var user User
	if err := c.patch(ctx, resourcePath("/users", id), input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserRole points the user at another role.
func (c *APIClient) UpdateUserRole(ctx context.Context, id, roleID string) (*User, error) {
	if roleID == "" {
		return nil, &ValidationError{Entity: "user", Problems: []string{"roleId is required"}}
	}
	var user User
	body := struct {
		RoleID string `json:"roleId"`
	}{RoleID: roleID}
	if err := c.patch(ctx, resourcePath("/users", id, "role"), body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user permanently. Use UpdateUser with Enabled=false to disable.
func (c *APIClient) DeleteUser(ctx context.Context, id string) error {
	return c.remove(ctx, resourcePath("/users", id))
}

// ListRoles returns the roles users can be assigned.
func (c *APIClient) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := c.get(ctx, "/roles", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// FindRole returns the role with the given name from roles.
func FindRole(roles []Role, name RoleName) (Role, bool) {
	for _, r := range roles {
		if r.Name == name {
			return r, true
		}
	}
	return Role{}, false
}
