package domain

// ScopeKind selects how a recipient audience is computed.
type ScopeKind string

const (
	ScopeAll          ScopeKind = "all"
	ScopeOrganization ScopeKind = "organization"
	ScopeGroup        ScopeKind = "group"
	ScopeUser         ScopeKind = "user"
)

// RecipientScope is a transient audience selector, constructed per request
// from input and consumed immediately. ID is required for every kind except
// ScopeAll.
type RecipientScope struct {
	Kind ScopeKind
	ID   string
}

// Validate rejects unknown kinds and scope variants missing their required id
// rather than letting them silently count to zero.
func (s RecipientScope) Validate() error {
	switch s.Kind {
	case ScopeAll:
		return nil
	case ScopeOrganization:
		if s.ID == "" {
			return ErrValidation("organization scope requires organization_id")
		}
	case ScopeGroup:
		if s.ID == "" {
			return ErrValidation("group scope requires group_id")
		}
	case ScopeUser:
		if s.ID == "" {
			return ErrValidation("user scope requires user_id")
		}
	default:
		return ErrValidation("unknown scope %q", string(s.Kind))
	}
	return nil
}
