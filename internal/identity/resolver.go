package identity

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"

	"github.com/pnoren1/Course-App-sub003/internal/domain"
)

var _ domain.IdentityResolver = (*Resolver)(nil)

// Resolver exchanges a raw credential for a verified principal via a
// TokenValidator. It performs no retries — retry policy belongs to the
// caller — and is side-effect-free.
type Resolver struct {
	validator TokenValidator
	timeout   time.Duration
}

// NewResolver creates a Resolver. timeout bounds one verification call;
// zero defaults to 5 seconds.
func NewResolver(validator TokenValidator, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Resolver{validator: validator, timeout: timeout}
}

// Resolve verifies the credential and returns the principal it identifies.
//
// An invalid or expired credential, or one that names no subject, yields an
// UnauthenticatedError. A transient provider failure (network error,
// timeout) yields an UpstreamUnavailableError so the guard can tell
// permanent denial from retry-worthy unavailability.
func (r *Resolver) Resolve(ctx context.Context, rawCredential string) (*domain.Principal, error) {
	if rawCredential == "" {
		return nil, domain.ErrUnauthenticated("no credential provided")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	claims, err := r.validator.Validate(ctx, rawCredential)
	if err != nil {
		if isTransient(err) {
			return nil, domain.ErrUpstreamUnavailable("identity provider unavailable: %v", err)
		}
		return nil, domain.ErrUnauthenticated("invalid credential")
	}
	if claims == nil || claims.Subject == "" {
		return nil, domain.ErrUnauthenticated("credential carries no subject")
	}

	p := &domain.Principal{
		ID:       claims.Subject,
		Metadata: claims.Raw,
	}
	if claims.Email != nil {
		p.Email = *claims.Email
	}
	return p, nil
}

// isTransient reports whether a verification error came from the transport
// to the provider rather than from the credential itself.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
