// Package authz enforces the vendor ownership boundary.
package authz

import "errors"

// ErrNotOwned is returned for resources the caller may not act on. Missing
// resources on owner-guarded paths surface the same error, so callers cannot
// probe whether a record exists.
var ErrNotOwned = errors.New("resource not owned by caller")

// Authorize allows the action only when the caller owns the resource.
func Authorize(ownerID, callerID string) error {
	if ownerID == "" || callerID == "" || ownerID != callerID {
		return ErrNotOwned
	}
	return nil
}
