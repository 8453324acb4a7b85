package sdk

import (
	"context"
	"fmt"
)

// Login exchanges email and password for an access token and stores it in the session.
func (c *APIClient) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	if err := Validate(SchemaLogin, input); err != nil {
		return nil, err
	}
	var resp AuthResponse
	if err := c.post(ctx, "/auth/login", input, &resp); err != nil {
		return nil, err
	}
	if err := c.storeAuth(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and signs in with the returned token.
func (c *APIClient) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	if err := Validate(SchemaRegister, input); err != nil {
		return nil, err
	}
	var resp AuthResponse
	if err := c.post(ctx, "/auth/register", input, &resp); err != nil {
		return nil, err
	}
	if err := c.storeAuth(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout forgets the stored credential. The server keeps no session to end.
func (c *APIClient) Logout() error {
	return c.session.Clear()
}

func (c *APIClient) storeAuth(resp *AuthResponse) error {
	if resp.AccessToken == "" {
		return fmt.Errorf("server returned no access token")
	}
	err := c.session.Save(&Credentials{
		AccessToken: resp.AccessToken,
		TokenType:   "Bearer",
		UserID:      resp.User.ID,
		Email:       resp.User.Email,
		FullName:    resp.User.FullName,
		Role:        resp.User.Role,
	})
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}
