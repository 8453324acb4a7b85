package crmtest

import (
	"context"
	"net/http"
	"strings"

	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type callerKey struct{}

func callerFrom(ctx context.Context) sdk.User {
	u, _ := ctx.Value(callerKey{}).(sdk.User)
	return u
}

// insertUser requires s.mu to be held.
func (s *Server) insertUser(fullName, email, mobile, password string, role sdk.Role, enabled bool) sdk.User {
	now := s.now()
	u := sdk.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		MobileNumber: mobile,
		Role:         role,
		Enabled:      enabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = &userRecord{user: u, password: password}
	s.userIDs = append(s.userIDs, u.ID)
	return u
}

func (s *Server) roleByName(name sdk.RoleName) sdk.Role {
	for _, r := range s.roles {
		if r.Name == name {
			return r
		}
	}
	return sdk.Role{}
}

func (s *Server) roleByID(id string) (sdk.Role, bool) {
	for _, r := range s.roles {
		if r.ID == id {
			return r, true
		}
	}
	return sdk.Role{}, false
}

func (s *Server) emailTaken(email, exceptID string) bool {
	for id, rec := range s.users {
		if id != exceptID && strings.EqualFold(rec.user.Email, email) {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		s.mu.Lock()
		rec, found := s.users[s.tokens[token]]
		var caller sdk.User
		if found {
			caller = rec.user
		}
		s.mu.Unlock()
		if !found {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, caller)))
	})
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if callerFrom(r.Context()).Role.Name != sdk.RoleAdmin {
			writeError(w, http.StatusForbidden, "Forbidden resource")
			return
		}
		next(w, r)
	}
}

func (s *Server) authResponse(u sdk.User) sdk.AuthResponse {
	token := uuid.NewString()
	s.tokens[token] = u.ID
	return sdk.AuthResponse{
		AccessToken: token,
		User: sdk.AuthUser{
			ID:           u.ID,
			FullName:     u.FullName,
			Email:        u.Email,
			MobileNumber: u.MobileNumber,
			Role:         u.Role.Name,
		},
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in sdk.LoginInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.userIDs {
		rec := s.users[id]
		if strings.EqualFold(rec.user.Email, in.Email) && rec.password == in.Password {
			if !rec.user.Enabled {
				writeError(w, http.StatusUnauthorized, "Account is disabled")
				return
			}
			writeJSON(w, http.StatusCreated, s.authResponse(rec.user))
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "Invalid credentials")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in sdk.RegisterInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(in.Email, "") {
		writeError(w, http.StatusConflict, "Email already in use")
		return
	}
	role := s.roleByName(sdk.RoleUser)
	if in.RoleID != "" {
		found, ok := s.roleByID(in.RoleID)
		if !ok {
			writeError(w, http.StatusBadRequest, "roleId must reference an existing role")
			return
		}
		role = found
	}
	u := s.insertUser(in.FullName, in.Email, in.MobileNumber, in.Password, role, true)
	writeJSON(w, http.StatusCreated, s.authResponse(u))
}

func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.roles)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, callerFrom(r.Context()))
}

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]sdk.User, 0, len(s.userIDs))
	for _, id := range s.userIDs {
		users = append(users, s.users[id].user)
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller := callerFrom(r.Context())
	if caller.Role.Name != sdk.RoleAdmin && caller.ID != id {
		writeError(w, http.StatusForbidden, "Forbidden resource")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, rec.user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in sdk.CreateUserInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	role, ok := s.roleByID(in.RoleID)
	if !ok {
		writeError(w, http.StatusBadRequest, "roleId must reference an existing role")
		return
	}
	if s.emailTaken(in.Email, "") {
		writeError(w, http.StatusConflict, "Email already in use")
		return
	}
	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	writeJSON(w, http.StatusCreated, s.insertUser(in.FullName, in.Email, in.MobileNumber, in.Password, role, enabled))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var in sdk.UpdateUserInput
	if !decode(w, r, &in) {
		return
	}
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	u := rec.user
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Email != nil {
		if s.emailTaken(*in.Email, id) {
			writeError(w, http.StatusConflict, "Email already in use")
			return
		}
		u.Email = *in.Email
	}
	if in.MobileNumber != nil {
		u.MobileNumber = *in.MobileNumber
	}
	if in.RoleID != nil {
		role, found := s.roleByID(*in.RoleID)
		if !found {
			writeError(w, http.StatusBadRequest, "roleId must reference an existing role")
			return
		}
		u.Role = role
	}
	if in.Enabled != nil {
		u.Enabled = *in.Enabled
	}
	if in.Password != nil {
		rec.password = *in.Password
	}
	u.UpdatedAt = s.now()
	rec.user = u
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RoleID string `json:"roleId"`
	}
	if !decode(w, r, &in) {
		return
	}
	id := chi.URLParam(r, "id")
	if callerFrom(r.Context()).ID == id {
		writeError(w, http.StatusForbidden, "You cannot change your own role")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	role, found := s.roleByID(in.RoleID)
	if !found {
		writeError(w, http.StatusBadRequest, "roleId must reference an existing role")
		return
	}
	rec.user.Role = role
	rec.user.UpdatedAt = s.now()
	writeJSON(w, http.StatusOK, rec.user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if callerFrom(r.Context()).ID == id {
		writeError(w, http.StatusForbidden, "You cannot delete your own account")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	delete(s.users, id)
	s.userIDs = removeID(s.userIDs, id)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleListLeads(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	leads := make([]sdk.Lead, 0, len(s.leadIDs))
	for _, id := range s.leadIDs {
		leads = append(leads, *s.leads[id])
	}
	writeJSON(w, http.StatusOK, leads)
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.leads[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var in sdk.CreateLeadInput
	if !decode(w, r, &in) {
		return
	}
	if in.Status == "" {
		in.Status = sdk.LeadStatusNew
	}
	if !in.Status.Valid() {
		writeError(w, http.StatusBadRequest, "status must be one of NEW, CONTACTED, WON, LOST")
		return
	}
	caller := callerFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	assignee, ok := s.users[in.AssignedToID]
	if !ok {
		writeError(w, http.StatusBadRequest, "assignedToId must reference an existing user")
		return
	}
	now := s.now()
	lead := &sdk.Lead{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Status:     in.Status,
		AssignedTo: assignee.user.Ref(),
		CreatedBy:  caller.Ref(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.leads[lead.ID] = lead
	s.leadIDs = append(s.leadIDs, lead.ID)
	writeJSON(w, http.StatusCreated, lead)
}

func (s *Server) handleUpdateLead(w http.ResponseWriter, r *http.Request) {
	var in sdk.UpdateLeadInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.leads[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	lead := *current
	if in.Name != nil {
		lead.Name = *in.Name
	}
	if in.Email != nil {
		lead.Email = *in.Email
	}
	if in.Phone != nil {
		lead.Phone = *in.Phone
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			writeError(w, http.StatusBadRequest, "status must be one of NEW, CONTACTED, WON, LOST")
			return
		}
		lead.Status = *in.Status
	}
	if in.AssignedToID != nil {
		assignee, found := s.users[*in.AssignedToID]
		if !found {
			writeError(w, http.StatusBadRequest, "assignedToId must reference an existing user")
			return
		}
		lead.AssignedTo = assignee.user.Ref()
	}
	lead.UpdatedAt = s.now()
	*current = lead
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) handleDeleteLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[id]; !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	delete(s.leads, id)
	s.leadIDs = removeID(s.leadIDs, id)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleListClients(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clients := make([]sdk.Client, 0, len(s.clientIDs))
	for _, id := range s.clientIDs {
		clients = append(clients, *s.clients[id])
	}
	writeJSON(w, http.StatusOK, clients)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	client, ok := s.clients[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var in sdk.CreateClientInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	manager, ok := s.users[in.AssignedManagerID]
	if !ok {
		writeError(w, http.StatusBadRequest, "assignedManagerId must reference an existing user")
		return
	}
	var linked *sdk.LeadRef
	if in.LinkedLeadID != "" {
		lead, found := s.leads[in.LinkedLeadID]
		if !found {
			writeError(w, http.StatusBadRequest, "linkedLeadId must reference an existing lead")
			return
		}
		ref := lead.Ref()
		linked = &ref
	}
	now := s.now()
	client := &sdk.Client{
		ID:              uuid.NewString(),
		CompanyName:     in.CompanyName,
		ContactPerson:   in.ContactPerson,
		Email:           in.Email,
		Phone:           in.Phone,
		LinkedLead:      linked,
		AssignedManager: manager.user.Ref(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.clients[client.ID] = client
	s.clientIDs = append(s.clientIDs, client.ID)
	writeJSON(w, http.StatusCreated, client)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	var in sdk.UpdateClientInput
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.clients[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	client := *current
	if in.CompanyName != nil {
		client.CompanyName = *in.CompanyName
	}
	if in.ContactPerson != nil {
		client.ContactPerson = *in.ContactPerson
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.LinkedLeadID != nil && *in.LinkedLeadID == "" {
		client.LinkedLead = nil
	} else if in.LinkedLeadID != nil {
		lead, found := s.leads[*in.LinkedLeadID]
		if !found {
			writeError(w, http.StatusBadRequest, "linkedLeadId must reference an existing lead")
			return
		}
		ref := lead.Ref()
		client.LinkedLead = &ref
	}
	if in.AssignedManagerID != nil {
		manager, found := s.users[*in.AssignedManagerID]
		if !found {
			writeError(w, http.StatusBadRequest, "assignedManagerId must reference an existing user")
			return
		}
		client.AssignedManager = manager.user.Ref()
	}
	client.UpdatedAt = s.now()
	*current = client
	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	delete(s.clients, id)
	s.clientIDs = removeID(s.clientIDs, id)
	w.WriteHeader(http.StatusOK)
}
