package security

import (
	"context"
	"log/slog"

	"github.com/pnoren1/Course-App-sub003/internal/domain"
)

// ProfileService exposes privileged profile inspection and the bootstrap
// provisioning path.
type ProfileService struct {
	profiles         domain.ProfileRepository
	bootstrapSubject string
	logger           *slog.Logger
}

// NewProfileService creates a ProfileService. bootstrapSubject is the
// identity-provider subject allowed to self-provision an admin profile;
// empty disables self-provisioning.
func NewProfileService(profiles domain.ProfileRepository, bootstrapSubject string, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{
		profiles:         profiles,
		bootstrapSubject: bootstrapSubject,
		logger:           logger,
	}
}

// Get reads one profile through the privileged handle. The acting admin, if
// present in the context, is recorded so privileged reads stay attributable.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrValidation("user_id is required")
	}
	if ac, ok := domain.AuthContextFromContext(ctx); ok {
		s.logger.InfoContext(ctx, "privileged profile read",
			"principal_id", ac.Principal.ID, "target_user_id", userID)
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// Bootstrap upserts an admin profile for the calling principal. The caller
// is authenticated but deliberately not authorized through the guard: the
// whole point of bootstrap is that no admin profile may exist yet.
//
// Allowed when the principal matches the configured bootstrap subject, or
// when the principal already holds a system-admin profile (re-running
// bootstrap is then harmless).
func (s *ProfileService) Bootstrap(ctx context.Context, principal domain.Principal) (*domain.Profile, error) {
	allowed := s.bootstrapSubject != "" && principal.ID == s.bootstrapSubject
	if !allowed {
		existing, err := s.profiles.GetByUserID(ctx, principal.ID)
		if err == nil && Capabilities(*existing).IsSystemAdmin {
			allowed = true
		}
	}
	if !allowed {
		s.logger.WarnContext(ctx, "bootstrap provisioning denied",
			"principal_id", principal.ID)
		return nil, domain.ErrAccessDenied("not permitted to provision an admin profile")
	}

	req := domain.UpsertAdminProfileRequest{UserID: principal.ID}
	if principal.Email != "" {
		email := principal.Email
		req.Email = &email
	}

	p, err := s.profiles.UpsertAdmin(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "admin profile provisioned", "principal_id", principal.ID)
	return p, nil
}
