package security

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pnoren1/Course-App-sub003/internal/domain"
	"github.com/pnoren1/Course-App-sub003/internal/identity"
)

// Requirement is the minimum capability an endpoint demands.
type Requirement int

const (
	// RequireNone authenticates and loads the profile without a role check.
	RequireNone Requirement = iota
	// RequireAdmin accepts roles admin and org_admin.
	RequireAdmin
	// RequireSystemAdmin accepts only the admin role.
	RequireSystemAdmin
)

// String returns the requirement name for logs.
func (r Requirement) String() string {
	switch r {
	case RequireNone:
		return "none"
	case RequireAdmin:
		return "admin_or_org_admin"
	case RequireSystemAdmin:
		return "system_admin_only"
	default:
		return "unknown"
	}
}

// Guard composes credential extraction, identity resolution, profile
// loading, and the role policy into the single authorization call every
// protected endpoint uses. Endpoints depend on Authorize; they never
// re-derive the role comparison themselves.
type Guard struct {
	resolver      domain.IdentityResolver
	profiles      domain.ProfileRepository
	sessionCookie string
	logger        *slog.Logger
}

// NewGuard creates a Guard. sessionCookie names the cookie carrying the
// ambient browser session token.
func NewGuard(resolver domain.IdentityResolver, profiles domain.ProfileRepository, sessionCookie string, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		resolver:      resolver,
		profiles:      profiles,
		sessionCookie: sessionCookie,
		logger:        logger,
	}
}

// Authorize resolves the request's credential to an AuthContext and enforces
// the minimum requirement. The first failure short-circuits; the returned
// error is always one of the typed domain errors so the API layer can map
// it to a stable status. Safe to call more than once per request: it holds
// no state beyond the profile read.
//
// Unauthenticated failures carry deliberately generic messages so an
// unauthenticated caller cannot probe which user ids or emails exist.
func (g *Guard) Authorize(r *http.Request, min Requirement) (*domain.AuthContext, error) {
	ctx := r.Context()

	cred, ok := identity.ExtractCredential(r, g.sessionCookie)
	if !ok {
		return nil, domain.ErrUnauthenticated("authentication required")
	}

	principal, err := g.resolver.Resolve(ctx, cred.Token)
	if err != nil {
		g.logDenied(ctx, "", "resolve_credential", err)
		return nil, err
	}

	profile, err := g.profiles.GetByUserID(ctx, principal.ID)
	if err != nil {
		g.logDenied(ctx, principal.ID, "load_profile", err)
		return nil, err
	}

	caps := Capabilities(*profile)
	switch min {
	case RequireAdmin:
		if !caps.IsAdmin {
			err := domain.ErrInsufficientRole("admin role required")
			g.logDenied(ctx, principal.ID, min.String(), err)
			return nil, err
		}
	case RequireSystemAdmin:
		if !caps.IsSystemAdmin {
			err := domain.ErrInsufficientRole("system admin role required")
			g.logDenied(ctx, principal.ID, min.String(), err)
			return nil, err
		}
	}

	return &domain.AuthContext{
		Principal:    *principal,
		Profile:      *profile,
		Capabilities: caps,
	}, nil
}

// Authenticate resolves the request's credential to a verified principal
// without loading a profile or checking a role. It exists for the bootstrap
// provisioning path, where the caller may not have a profile row yet.
func (g *Guard) Authenticate(r *http.Request) (*domain.Principal, error) {
	ctx := r.Context()

	cred, ok := identity.ExtractCredential(r, g.sessionCookie)
	if !ok {
		return nil, domain.ErrUnauthenticated("authentication required")
	}

	principal, err := g.resolver.Resolve(ctx, cred.Token)
	if err != nil {
		g.logDenied(ctx, "", "resolve_credential", err)
		return nil, err
	}
	return principal, nil
}

// logDenied records a denied request with enough context to audit it. The
// principal id is omitted when resolution itself failed.
func (g *Guard) logDenied(ctx context.Context, principalID, check string, err error) {
	var unauthenticated *domain.UnauthenticatedError
	level := slog.LevelWarn
	if errors.As(err, &unauthenticated) {
		level = slog.LevelInfo
	}
	attrs := []any{"check", check, "error", err.Error()}
	if principalID != "" {
		attrs = append(attrs, "principal_id", principalID)
	}
	g.logger.Log(ctx, level, "authorization denied", attrs...)
}
