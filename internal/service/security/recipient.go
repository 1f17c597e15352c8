package security

import (
	"context"

	"github.com/pnoren1/Course-App-sub003/internal/domain"
)

// RecipientService computes audience sizes from a recipient scope. It is a
// consumer of the guard's output: Count is unreachable without a prior
// successful Authorize, and it re-checks the capability anyway.
type RecipientService struct {
	directory domain.DirectoryRepository
}

// NewRecipientService creates a RecipientService over a policy-scoped
// directory repository.
func NewRecipientService(directory domain.DirectoryRepository) *RecipientService {
	return &RecipientService{directory: directory}
}

// Count resolves a recipient scope to an audience size.
//
// All, Organization, and Group count profiles with a non-null email. User
// returns a constant 1 for a well-formed id; the target's existence is not
// verified, matching the behavior announcement senders rely on today.
func (s *RecipientService) Count(ctx context.Context, scope domain.RecipientScope, ac domain.AuthContext) (uint64, error) {
	if !ac.Capabilities.IsAdmin {
		return 0, domain.ErrAccessDenied("admin role required to resolve recipients")
	}
	if err := scope.Validate(); err != nil {
		return 0, err
	}

	switch scope.Kind {
	case domain.ScopeAll:
		return s.directory.CountAll(ctx)
	case domain.ScopeOrganization:
		return s.directory.CountByOrganization(ctx, scope.ID)
	case domain.ScopeGroup:
		return s.directory.CountByGroup(ctx, scope.ID)
	case domain.ScopeUser:
		return 1, nil
	default:
		return 0, domain.ErrValidation("unknown scope %q", string(scope.Kind))
	}
}
