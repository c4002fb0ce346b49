package audit

import (
	"errors"
	"fmt"
)

// CollaboratorError is the single error kind of the audit core. It wraps any
// failure of a resource lister or compliance predicate (network failure,
// authorization failure, malformed response). The runner turns it into an
// Error-outcome finding for the affected resource or rule and continues.
type CollaboratorError struct {
	// Op names the failed collaborator call (e.g. "list EBS volumes").
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator: %s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// asCollaboratorError normalizes err into a *CollaboratorError. Errors that
// already are one (anywhere in their chain) are returned unchanged so the
// original Op survives; anything else is wrapped with op.
func asCollaboratorError(op string, err error) *CollaboratorError {
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return ce
	}
	return &CollaboratorError{Op: op, Err: err}
}
