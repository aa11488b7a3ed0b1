package kinvey

import (
	"encoding/json"

	kerrors "github.com/kinvey/kinvey-go-sdk/internal/errors"
)

// RequestProperties is custom per-request metadata serialized into the
// X-Kinvey-Custom-Request-Properties header, capped at maxBytes serialized.
type RequestProperties struct {
	AppVersion string
	Custom     map[string]any
}

// merged returns the single JSON object combining Custom and AppVersion,
// which is what gets serialized into the header — not just Custom alone.
func (p RequestProperties) merged() map[string]any {
	out := make(map[string]any, len(p.Custom)+1)
	for k, v := range p.Custom {
		out[k] = v
	}
	if p.AppVersion != "" {
		out["appVersion"] = p.AppVersion
	}
	return out
}

// MarshalJSON serializes the merged appVersion+custom view.
func (p RequestProperties) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.merged())
}

// validate serializes p and fails with InvalidInput if the UTF-8 byte
// length of the result is >= maxBytes.
func (p RequestProperties) validate(maxBytes int) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", kerrors.Wrap(kerrors.InvalidInput, "failed to serialize request properties", err)
	}
	if len(b) >= maxBytes {
		return "", kerrors.New(kerrors.InvalidInput, "custom request properties exceed size cap")
	}
	return string(b), nil
}
