// Package approval centralizes the actor and state-legality checks every
// transition goes through. The functions are pure: they consult nothing
// but their arguments, so listing and request workflows cannot drift
// into per-endpoint authorization rules.
package approval

import (
	"github.com/propspace/propspace-backend/internal/apperr"
	"github.com/propspace/propspace-backend/internal/identity"
)

// RequireRole checks that the actor's role is one of the allowed roles.
func RequireRole(role string, allowed ...string) error {
	for _, a := range allowed {
		if role == a {
			return nil
		}
	}
	return apperr.Forbidden("role %q is not permitted to perform this action", role)
}

// RequireOwner checks that the acting account is the entity's owner
// account. Both sides are account ids; profile ids never reach here.
func RequireOwner(actor, owner identity.AccountID) error {
	if actor != owner {
		return apperr.Forbidden("you do not own this resource")
	}
	return nil
}

// RequireRequester checks that the acting account raised the request.
func RequireRequester(actor, requester identity.AccountID) error {
	if actor != requester {
		return apperr.Forbidden("only the requester may perform this action")
	}
	return nil
}

// RequireSourceState checks that the entity's current state permits the
// requested transition, naming the offending state otherwise.
func RequireSourceState[S ~string](current S, allowed ...S) error {
	for _, a := range allowed {
		if current == a {
			return nil
		}
	}
	return apperr.InvalidTransition("not permitted from current state %q", string(current))
}
