package api

import (
	"net/http"

	"github.com/pnoren1/Course-App-sub003/internal/domain"
	"github.com/pnoren1/Course-App-sub003/internal/service/security"
)

// RecipientCountResponse is the body returned by GET /v1/admin/recipients/count.
type RecipientCountResponse struct {
	Scope string `json:"scope"`
	ID    string `json:"id,omitempty"`
	Count uint64 `json:"count"`
}

// RecipientCount returns how many users a broadcast scope would reach.
// Admins only; scoping is expressed with query parameters:
//
//	?scope=all
//	?scope=organization&organization_id=...
//	?scope=group&group_id=...
//	?scope=user&user_id=...
func (h *Handler) RecipientCount(w http.ResponseWriter, r *http.Request) {
	ac, err := h.guard.Authorize(r, security.RequireAdmin)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	scope, err := recipientScopeFromQuery(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	count, err := h.recipients.Count(r.Context(), scope, *ac)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RecipientCountResponse{
		Scope: string(scope.Kind),
		ID:    scope.ID,
		Count: count,
	})
}

func recipientScopeFromQuery(r *http.Request) (domain.RecipientScope, error) {
	q := r.URL.Query()
	kind := domain.ScopeKind(q.Get("scope"))

	var id string
	switch kind {
	case domain.ScopeAll:
	case domain.ScopeOrganization:
		id = q.Get("organization_id")
	case domain.ScopeGroup:
		id = q.Get("group_id")
	case domain.ScopeUser:
		id = q.Get("user_id")
	}

	scope := domain.RecipientScope{Kind: kind, ID: id}
	if err := scope.Validate(); err != nil {
		return domain.RecipientScope{}, err
	}
	return scope, nil
}
