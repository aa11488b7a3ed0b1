// Package errors defines the typed error hierarchy used across the request
// core. The hierarchy is intentionally flat: six named kinds, no subclassing.
package errors

import "fmt"

// Kind identifies one of the error categories the request core can produce.
type Kind int

const (
	// InvalidInput covers unknown methods, malformed headers, and oversized
	// custom request properties.
	InvalidInput Kind = iota

	// AlreadyExecuting is returned when execute() is called on a Request
	// whose previous call has not yet settled.
	AlreadyExecuting

	// NotFound covers both a local-store miss and a server envelope with
	// name "EntityNotFound".
	NotFound

	// BlobNotFound is synthesized from a server envelope with name
	// "BlobNotFound".
	BlobNotFound

	// NoResponse means the dispatcher completed without producing a
	// response — a logic bug in the policy dispatch table.
	NoResponse

	// KinveyError is the catch-all for any non-2xx response whose envelope
	// did not map to one of the specialized kinds above.
	KinveyError
)

// String returns a human-readable representation of the error kind.
func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case AlreadyExecuting:
		return "AlreadyExecuting"
	case NotFound:
		return "NotFound"
	case BlobNotFound:
		return "BlobNotFound"
	case NoResponse:
		return "NoResponse"
	case KinveyError:
		return "KinveyError"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// SDKError wraps an error with the kind metadata callers switch on.
type SDKError struct {
	Kind       Kind
	Message    string
	StatusCode int    // HTTP status code, 0 if not envelope-derived
	Debug      string // optional debug detail from a server envelope
	Underlying error  // optional wrapped cause
}

// Error implements the error interface.
func (e *SDKError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Underlying)
	}
	return e.Kind.String()
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *SDKError) Unwrap() error { return e.Underlying }

// Is reports whether err carries the same Kind, so callers can use
// errors.Is(err, &SDKError{Kind: NotFound}).
func (e *SDKError) Is(target error) bool {
	t, ok := target.(*SDKError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an SDKError of the given kind with a message.
func New(kind Kind, message string) *SDKError {
	return &SDKError{Kind: kind, Message: message}
}

// Wrap constructs an SDKError of the given kind wrapping an underlying error.
func Wrap(kind Kind, message string, underlying error) *SDKError {
	return &SDKError{Kind: kind, Message: message, Underlying: underlying}
}

// KindOf returns the Kind of err if it (or something in its chain) is an
// *SDKError, and ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var sdkErr *SDKError
	if se, ok := err.(*SDKError); ok {
		sdkErr = se
	} else if ue, ok := err.(interface{ Unwrap() error }); ok {
		return KindOf(ue.Unwrap())
	} else {
		return 0, false
	}
	return sdkErr.Kind, true
}

// Of reports whether err's Kind matches k.
func Of(err error, k Kind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}
