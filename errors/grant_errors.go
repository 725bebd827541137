// errors/grant_errors.go
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIdentityUnavailable = errors.New("could not resolve profile information")

	// ErrProfileIncomplete is the identity provider answering without the
	// fields the pipeline needs. It matches ErrIdentityUnavailable too, so
	// callers that only care about the broad class keep working.
	ErrProfileIncomplete = fmt.Errorf("%w: incomplete profile information", ErrIdentityUnavailable)
	ErrDomainNotAllowed    = errors.New("domain is not in the configured whitelist")
	ErrInvalidGrantData    = errors.New("invalid grant request data")
	ErrProjectNotFound     = errors.New("could not find project ID")
	ErrPolicyUnavailable   = errors.New("could not read project policy")
	ErrPolicyConflict      = errors.New("policy changed since it was read")
	ErrPolicyWriteFailed   = errors.New("could not write project policy")
	ErrInternalServer      = errors.New("internal server error")
	ErrUnauthorized        = errors.New("unauthorized")
)

// Detail returns the part of err's message that follows the sentinel it was
// wrapped around, so upstream error text can be surfaced without the
// taxonomy prefix.
func Detail(err, sentinel error) string {
	if err == nil {
		return ""
	}
	prefix := sentinel.Error() + ": "
	if msg, found := strings.CutPrefix(err.Error(), prefix); found {
		return msg
	}
	return err.Error()
}
