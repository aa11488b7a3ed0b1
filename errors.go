package kinvey

import (
	kerrors "github.com/kinvey/kinvey-go-sdk/internal/errors"
)

// SDKError is the error type the request core produces for its own failures
// (input validation, re-entry, missing response, server error envelopes).
// Rack and credential errors are returned unchanged, not wrapped in it.
// Re-exported at the root so callers never need to import internal/errors
// directly.
type SDKError = kerrors.SDKError

// Kind classifies an SDKError's cause. See the internal/errors.Kind
// constants re-exported below.
type Kind = kerrors.Kind

const (
	InvalidInput     = kerrors.InvalidInput
	AlreadyExecuting = kerrors.AlreadyExecuting
	NotFound         = kerrors.NotFound
	BlobNotFound     = kerrors.BlobNotFound
	NoResponse       = kerrors.NoResponse
	KinveyError      = kerrors.KinveyError
)

// IsNotFound reports whether err is an SDKError of Kind NotFound or
// BlobNotFound.
func IsNotFound(err error) bool {
	k, ok := kerrors.KindOf(err)
	return ok && (k == kerrors.NotFound || k == kerrors.BlobNotFound)
}

// IsAlreadyExecuting reports whether err signals re-entrant use of a Request
// already in flight.
func IsAlreadyExecuting(err error) bool {
	return kerrors.Of(err, kerrors.AlreadyExecuting)
}

// IsInvalidInput reports whether err signals a caller input validation
// failure (bad path, oversized custom properties, malformed method, etc).
func IsInvalidInput(err error) bool {
	return kerrors.Of(err, kerrors.InvalidInput)
}
