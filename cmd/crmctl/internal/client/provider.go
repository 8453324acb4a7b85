package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/pterm/pterm"
)

// StoreFactory opens the persistent credential store.
type StoreFactory func() (sdk.CredentialStore, error)

// Provider yields SDK clients backed by the credential store, or by an ephemeral bearer
// token when one is set.
type Provider struct {
	apiURL      string
	bearerToken string // ephemeral token that bypasses credential store (--token, CRM_TOKEN)
	openStore   StoreFactory
	httpClient  *http.Client
	logger      *pterm.Logger
	userAgent   string

	sessionOnce sync.Once
	session     *sdk.Session
	sessionErr  error

	sdkOnce   sync.Once
	sdkClient *sdk.APIClient
	sdkErr    error

	callerOnce sync.Once
	caller     *sdk.User
	callerErr  error
}

// NewProvider constructs a Provider bound to the given API URL.
func NewProvider(apiURL string, openStore StoreFactory) *Provider {
	return &Provider{apiURL: apiURL, openStore: openStore, httpClient: http.DefaultClient}
}

// SetBearerToken injects an ephemeral bearer token that is never persisted.
func (p *Provider) SetBearerToken(token string) {
	p.bearerToken = token
}

// SetLogger enables SDK debug logging.
func (p *Provider) SetLogger(logger *pterm.Logger) {
	p.logger = logger
}

// SetHTTPClient overrides the transport (tests).
func (p *Provider) SetHTTPClient(c *http.Client) {
	p.httpClient = c
}

// SetUserAgent sets the User-Agent sent with each request.
func (p *Provider) SetUserAgent(ua string) {
	p.userAgent = ua
}

// APIURL is the API root the provider's clients talk to.
func (p *Provider) APIURL() string { return p.apiURL }

// UsesEphemeralToken reports whether the session comes from --token or CRM_TOKEN.
func (p *Provider) UsesEphemeralToken() bool { return p.bearerToken != "" }

// Session returns the session: in-memory for an ephemeral token, else file-backed.
func (p *Provider) Session() (*sdk.Session, error) {
	p.sessionOnce.Do(func() {
		if p.bearerToken != "" {
			p.session = sdk.NewSession(sdk.NewMemoryStore(p.bearerToken))
			return
		}
		if p.openStore == nil {
			p.session = sdk.NewSession(nil)
			return
		}
		store, err := p.openStore()
		if err != nil {
			p.sessionErr = fmt.Errorf("failed to create credential store: %w", err)
			return
		}
		p.session = sdk.NewSession(store)
	})
	return p.session, p.sessionErr
}

// SDKClient returns an SDK client sharing the provider's session. It may be
// unauthenticated.
func (p *Provider) SDKClient(ctx context.Context) (*sdk.APIClient, error) {
	p.sdkOnce.Do(func() {
		session, err := p.Session()
		if err != nil {
			p.sdkErr = err
			return
		}
		opts := []sdk.ClientOption{sdk.WithSession(session), sdk.WithHTTPClient(p.httpClient)}
		if p.logger != nil {
			opts = append(opts, sdk.WithLogger(p.logger))
		}
		if p.userAgent != "" {
			opts = append(opts, sdk.WithUserAgent(p.userAgent))
		}
		p.sdkClient = sdk.NewClient(p.apiURL, opts...)
	})

	if p.sdkErr != nil {
		return nil, p.sdkErr
	}
	return p.sdkClient, nil
}

// RequireSession fails with sdk.ErrNotLoggedIn when no credential is stored.
func (p *Provider) RequireSession() error {
	session, err := p.Session()
	if err != nil {
		return err
	}
	if !session.IsAuthenticated() {
		return fmt.Errorf("%w; please run `crmctl auth login`", sdk.ErrNotLoggedIn)
	}
	return nil
}

// Caller fetches the signed-in user once per invocation.
func (p *Provider) Caller(ctx context.Context) (*sdk.User, error) {
	p.callerOnce.Do(func() {
		c, err := p.SDKClient(ctx)
		if err != nil {
			p.callerErr = err
			return
		}
		user, err := c.Me(ctx)
		if err != nil {
			p.callerErr = fmt.Errorf("failed to load current user: %w", err)
			return
		}
		p.caller = user
	})
	return p.caller, p.callerErr
}
