package errors

import "fmt"

// ClassifyEnvelope lifts a non-2xx server error envelope into one of the
// three envelope-derived SDKError kinds: BlobNotFound, NotFound (from
// "EntityNotFound"), or the KinveyError catch-all. Fields mirror the wire
// envelope {name, message|description|error, debug}; callers decode that
// shape (see internal/types.DecodeErrorEnvelope) before calling this.
func ClassifyEnvelope(statusCode int, name, message, description, errField, debug string) *SDKError {
	kind := KinveyError
	switch name {
	case "BlobNotFound":
		kind = BlobNotFound
	case "EntityNotFound":
		kind = NotFound
	}

	msg := message
	if msg == "" {
		msg = description
	}
	if msg == "" {
		msg = errField
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", statusCode)
	}

	return &SDKError{
		Kind:       kind,
		Message:    msg,
		StatusCode: statusCode,
		Debug:      debug,
	}
}
