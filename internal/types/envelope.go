package types

import "encoding/json"

// envelopeWire mirrors the server error envelope's wire shape.
type envelopeWire struct {
	Name        string `json:"name"`
	Message     string `json:"message"`
	Description string `json:"description"`
	Error       string `json:"error"`
	Debug       string `json:"debug"`
}

// ErrorEnvelope is the decoded, language-native form of envelopeWire.
type ErrorEnvelope struct {
	Name        string
	Message     string
	Description string
	ErrorField  string
	Debug       string
}

// DecodeErrorEnvelope best-effort decodes an arbitrary response body (as
// produced by a rack: a map, a struct, raw JSON bytes, or a string) into an
// ErrorEnvelope. ok is false when data carries none of the recognized
// fields, meaning the caller should fall back to a generic message.
func DecodeErrorEnvelope(data any) (ErrorEnvelope, bool) {
	if data == nil {
		return ErrorEnvelope{}, false
	}

	var raw []byte
	switch v := data.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ErrorEnvelope{}, false
		}
		raw = b
	}

	var wire envelopeWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return ErrorEnvelope{}, false
	}
	if wire.Name == "" && wire.Message == "" && wire.Description == "" && wire.Error == "" {
		return ErrorEnvelope{}, false
	}
	return ErrorEnvelope{
		Name:        wire.Name,
		Message:     wire.Message,
		Description: wire.Description,
		ErrorField:  wire.Error,
		Debug:       wire.Debug,
	}, true
}
