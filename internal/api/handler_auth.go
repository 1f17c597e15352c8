package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pnoren1/Course-App-sub003/internal/domain"
	"github.com/pnoren1/Course-App-sub003/internal/service/security"
)

// Principal is the API representation of a verified identity.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Profile is the API representation of an authorization profile.
type Profile struct {
	UserID         string  `json:"user_id"`
	Email          *string `json:"email,omitempty"`
	Role           string  `json:"role"`
	OrganizationID *string `json:"organization_id,omitempty"`
	GroupID        *string `json:"group_id,omitempty"`
}

// Capabilities is the API representation of derived capabilities.
type Capabilities struct {
	IsAdmin       bool `json:"is_admin"`
	IsSystemAdmin bool `json:"is_system_admin"`
	IsOrgScoped   bool `json:"is_org_scoped"`
}

// MeResponse is the body returned by GET /v1/me.
type MeResponse struct {
	Principal    Principal    `json:"principal"`
	Profile      Profile      `json:"profile"`
	Capabilities Capabilities `json:"capabilities"`
}

func profileToAPI(p domain.Profile) Profile {
	return Profile{
		UserID:         p.UserID,
		Email:          p.Email,
		Role:           string(p.Role),
		OrganizationID: p.OrganizationID,
		GroupID:        p.GroupID,
	}
}

func authContextToAPI(ac domain.AuthContext) MeResponse {
	return MeResponse{
		Principal: Principal{
			ID:    ac.Principal.ID,
			Email: ac.Principal.Email,
		},
		Profile: profileToAPI(ac.Profile),
		Capabilities: Capabilities{
			IsAdmin:       ac.Capabilities.IsAdmin,
			IsSystemAdmin: ac.Capabilities.IsSystemAdmin,
			IsOrgScoped:   ac.Capabilities.IsOrgScoped,
		},
	}
}

// Me returns the caller's resolved authorization context. No role minimum:
// any authenticated principal with a profile may inspect itself.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ac, err := h.guard.Authorize(r, security.RequireNone)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authContextToAPI(*ac))
}

// GetProfile returns one user's authorization profile, read through the
// privileged store handle. System admins only.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ac, err := h.guard.Authorize(r, security.RequireSystemAdmin)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	ctx := domain.WithAuthContext(r.Context(), *ac)
	p, err := h.profiles.Get(ctx, chi.URLParam(r, "userID"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileToAPI(*p))
}

// Bootstrap provisions an admin profile for the calling principal. The
// caller is authenticated only — it may not have a profile row yet.
func (h *Handler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	principal, err := h.guard.Authenticate(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	p, err := h.profiles.Bootstrap(r.Context(), *principal)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileToAPI(*p))
}
