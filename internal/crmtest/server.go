// Package crmtest provides an in-memory stand-in for the CRM REST API used by tests.
//
// It applies the rules the real API is expected to apply: admin-only user management,
// refusal of self role changes and self deletion, the NEW default lead status, reference
// existence for assignees and linked leads, and partial PATCH semantics.
package crmtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RecordedRequest is one request the server received.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	RequestID     string
	Body          []byte
}

// BodyFields decodes the recorded JSON body into a map.
func (r RecordedRequest) BodyFields() map[string]any {
	fields := map[string]any{}
	_ = json.Unmarshal(r.Body, &fields)
	return fields
}

type userRecord struct {
	user     sdk.User
	password string
}

type failure struct {
	status  int
	message string
}

// Server is an httptest server holding users, roles, leads and clients in memory.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	roles     []sdk.Role
	users     map[string]*userRecord
	userIDs   []string
	leads     map[string]*sdk.Lead
	leadIDs   []string
	clients   map[string]*sdk.Client
	clientIDs []string
	tokens    map[string]string
	requests  []RecordedRequest
	failures  map[string]failure
	now       func() time.Time
}

// NewServer starts a server seeded with the ADMIN, SALES and USER roles. It is closed
// when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		users:    map[string]*userRecord{},
		leads:    map[string]*sdk.Lead{},
		clients:  map[string]*sdk.Client{},
		tokens:   map[string]string{},
		failures: map[string]failure{},
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, name := range sdk.RoleNames {
		s.roles = append(s.roles, sdk.Role{
			ID:          "role-" + strings.ToLower(string(name)),
			Name:        name,
			Description: strings.ToLower(string(name)) + " role",
		})
	}

	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.injectFailures)

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register", s.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/roles", s.handleListRoles)

		r.Get("/users/me", s.handleMe)
		r.Get("/users", s.adminOnly(s.handleListUsers))
		r.Post("/users", s.adminOnly(s.handleCreateUser))
		r.Get("/users/{id}", s.handleGetUser)
		r.Patch("/users/{id}", s.adminOnly(s.handleUpdateUser))
		r.Patch("/users/{id}/role", s.adminOnly(s.handleUpdateUserRole))
		r.Delete("/users/{id}", s.adminOnly(s.handleDeleteUser))

		r.Get("/leads", s.handleListLeads)
		r.Post("/leads", s.handleCreateLead)
		r.Get("/leads/{id}", s.handleGetLead)
		r.Patch("/leads/{id}", s.handleUpdateLead)
		r.Delete("/leads/{id}", s.handleDeleteLead)

		r.Get("/clients", s.handleListClients)
		r.Post("/clients", s.handleCreateClient)
		r.Get("/clients/{id}", s.handleGetClient)
		r.Patch("/clients/{id}", s.handleUpdateClient)
		r.Delete("/clients/{id}", s.handleDeleteClient)
	})

	return r
}

// SeedUser stores an enabled user with the given role and returns it.
func (s *Server) SeedUser(fullName, email, password string, role sdk.RoleName) sdk.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertUser(fullName, email, "555-0100", password, s.roleByName(role), true)
}

// Login returns a bearer token for userID without going through /auth/login.
func (s *Server) Login(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.tokens[token] = userID
	return token
}

// SeedLead stores a lead directly.
func (s *Server) SeedLead(name, email string, status sdk.LeadStatus, assignee, creator sdk.User) sdk.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	lead := &sdk.Lead{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		Phone:      "555-0200",
		Status:     status,
		AssignedTo: assignee.Ref(),
		CreatedBy:  creator.Ref(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.leads[lead.ID] = lead
	s.leadIDs = append(s.leadIDs, lead.ID)
	return *lead
}

// RoleID returns the identifier of a seeded role.
func (s *Server) RoleID(name sdk.RoleName) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roleByName(name).ID
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request, or false when none was received.
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// ResetRequests forgets recorded requests.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// FailOn makes every request matching method and path answer status with message.
func (s *Server) FailOn(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

// ClearFailures removes all injected failures.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]failure{}
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-Id"),
			Body:          body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if ok {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"statusCode": status, "message": message})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	return true
}
