package sdk

import "context"

// ListLeads returns every lead visible to the caller.
func (c *APIClient) ListLeads(ctx context.Context) ([]Lead, error) {
	var leads []Lead
	if err := c.get(ctx, "/leads", &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// GetLead fetches one lead by ID.
func (c *APIClient) GetLead(ctx context.Context, id string) (*Lead, error) {
	var lead Lead
	if err := c.get(ctx, resourcePath("/leads", id), &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// CreateLead creates a lead. An empty status is sent as NEW.
func (c *APIClient) CreateLead(ctx context.Context, input CreateLeadInput) (*Lead, error) {
	if input.Status == "" {
		input.Status = LeadStatusNew
	}
	if err := Validate(SchemaCreateLead, input); err != nil {
		return nil, err
	}
	var lead Lead
	if err := c.post(ctx, "/leads", input, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateLead applies a partial update. createdBy cannot be changed.
func (c *APIClient) UpdateLead(ctx context.Context, id string, input UpdateLeadInput) (*Lead, error) {
	if err := Validate(SchemaUpdateLead, input); err != nil {
		return nil, err
	}
	var lead Lead
	if err := c.patch(ctx, resourcePath("/leads", id), input, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// DeleteLead removes a lead.
func (c *APIClient) DeleteLead(ctx context.Context, id string) error {
	return c.remove(ctx, resourcePath("/leads", id))
}
