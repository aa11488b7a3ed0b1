package kinvey

import "encoding/json"

// decodeInto best-effort decodes an arbitrary rack response body into out,
// tolerating the same []byte/string/typed-value shapes that
// internal/types.DecodeErrorEnvelope tolerates.
func decodeInto(data any, out any) error {
	var raw []byte
	switch v := data.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		raw = b
	}
	return json.Unmarshal(raw, out)
}
