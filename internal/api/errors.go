package api

import (
	"errors"
	"net/http"

	"github.com/pnoren1/Course-App-sub003/internal/domain"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
//
// Unauthenticated is 401. A real principal with a missing, ambiguous, or
// insufficient profile is 403. Transient upstream failures surface as 503
// so callers can tell a retry-worthy outage from a permanent denial.
func httpStatusFromDomainError(err error) int {
	var unauthenticated *domain.UnauthenticatedError
	var profileNotFound *domain.ProfileNotFoundError
	var profileAmbiguous *domain.ProfileAmbiguousError
	var insufficientRole *domain.InsufficientRoleError
	var upstream *domain.UpstreamUnavailableError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError

	switch {
	case errors.As(err, &unauthenticated):
		return http.StatusUnauthorized
	case errors.As(err, &profileNotFound), errors.As(err, &profileAmbiguous):
		return http.StatusForbidden
	case errors.As(err, &insufficientRole), errors.As(err, &accessDenied):
		return http.StatusForbidden
	case errors.As(err, &upstream):
		return http.StatusServiceUnavailable
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
