package views

import (
	"context"

	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
)

// LeadAPI is the subset of the SDK used by the leads flow.
type LeadAPI interface {
	ListLeads(ctx context.Context) ([]sdk.Lead, error)
	CreateLead(ctx context.Context, input sdk.CreateLeadInput) (*sdk.Lead, error)
	UpdateLead(ctx context.Context, id string, input sdk.UpdateLeadInput) (*sdk.Lead, error)
	DeleteLead(ctx context.Context, id string) error
}

// ClientAPI is the subset of the SDK used by the clients flow.
type ClientAPI interface {
	ListClients(ctx context.Context) ([]sdk.Client, error)
	CreateClient(ctx context.Context, input sdk.CreateClientInput) (*sdk.Client, error)
	UpdateClient(ctx context.Context, id string, input sdk.UpdateClientInput) (*sdk.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type (
	LeadsFlow   = Flow[sdk.Lead, sdk.CreateLeadInput, sdk.UpdateLeadInput]
	ClientsFlow = Flow[sdk.Client, sdk.CreateClientInput, sdk.UpdateClientInput]
)

// NewLeadsFlow wires the leads screen. dir may be nil to skip reference checks.
func NewLeadsFlow(api LeadAPI, dir *Directory, logger *pterm.Logger) *LeadsFlow {
	return NewFlow(Ops[sdk.Lead, sdk.CreateLeadInput, sdk.UpdateLeadInput]{
		Entity:   "lead",
		List:     api.ListLeads,
		Create:   api.CreateLead,
		Update:   api.UpdateLead,
		Delete:   api.DeleteLead,
		ID:       func(l sdk.Lead) string { return l.ID },
		Describe: func(l sdk.Lead) string { return l.Name + " <" + l.Email + ">" },
		ValidateCreate: func(in sdk.CreateLeadInput) error {
			if in.Status == "" {
				in.Status = sdk.LeadStatusNew
			}
			if err := sdk.Validate(sdk.SchemaCreateLead, in); err != nil {
				return err
			}
			return dir.checkRefs("lead", map[string]string{"assignedToId": in.AssignedToID}, nil)
		},
		ValidateUpdate: func(in sdk.UpdateLeadInput) error {
			if err := sdk.Validate(sdk.SchemaUpdateLead, in); err != nil {
				return err
			}
			return dir.checkRefs("lead", map[string]string{"assignedToId": deref(in.AssignedToID)}, nil)
		},
	}, logger)
}

// NewClientsFlow wires the clients screen. dir may be nil to skip reference checks.
func NewClientsFlow(api ClientAPI, dir *Directory, logger *pterm.Logger) *ClientsFlow {
	return NewFlow(Ops[sdk.Client, sdk.CreateClientInput, sdk.UpdateClientInput]{
		Entity:   "client",
		List:     api.ListClients,
		Create:   api.CreateClient,
		Update:   api.UpdateClient,
		Delete:   api.DeleteClient,
		ID:       func(c sdk.Client) string { return c.ID },
		Describe: func(c sdk.Client) string { return c.CompanyName },
		ValidateCreate: func(in sdk.CreateClientInput) error {
			if err := sdk.Validate(sdk.SchemaCreateClient, in); err != nil {
				return err
			}
			return dir.checkRefs("client",
				map[string]string{"assignedManagerId": in.AssignedManagerID},
				map[string]string{"linkedLeadId": in.LinkedLeadID})
		},
		ValidateUpdate: func(in sdk.UpdateClientInput) error {
			if err := sdk.Validate(sdk.SchemaUpdateClient, in); err != nil {
				return err
			}
			return dir.checkRefs("client",
				map[string]string{"assignedManagerId": deref(in.AssignedManagerID)},
				map[string]string{"linkedLeadId": deref(in.LinkedLeadID)})
		},
	}, logger)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
