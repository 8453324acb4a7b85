package sdk

import "context"

// ListClients returns every client visible to the caller.
func (c *APIClient) ListClients(ctx context.Context) ([]Client, error) {
	var clients []Client
	if err := c.get(ctx, "/clients", &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// GetClient fetches one client by ID.
func (c *APIClient) GetClient(ctx context.Context, id string) (*Client, error) {
	var client Client
	if err := c.get(ctx, resourcePath("/clients", id), &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// CreateClient creates a client record.
func (c *APIClient) CreateClient(ctx context.Context, input CreateClientInput) (*Client, error) {
	if err := Validate(SchemaCreateClient, input); err != nil {
		return nil, err
	}
	var client Client
	if err := c.post(ctx, "/clients", input, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// UpdateClient applies a partial update; omitted fields keep their values.
func (c *APIClient) UpdateClient(ctx context.Context, id string, input UpdateClientInput) (*Client, error) {
	if err := Validate(SchemaUpdateClient, input); err != nil {
		return nil, err
	}
	var client Client
	if err := c.patch(ctx, resourcePath("/clients", id), input, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// DeleteClient removes a client.
func (c *APIClient) DeleteClient(ctx context.Context, id string) error {
	return c.remove(ctx, resourcePath("/clients", id))
}
