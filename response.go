package kinvey

import "github.com/kinvey/kinvey-go-sdk/rack"

// Response is the result of executing a Request: a status code, headers,
// and a decoded body.
type Response struct {
	StatusCode int
	Headers    *HeaderMap
	Data       any
}

// IsSuccess reports whether StatusCode is in [200, 300).
func (r Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// responseFromRack adapts a rack.Response into a Response, building a
// HeaderMap so callers get case-insensitive access either way.
func responseFromRack(rr rack.Response) *Response {
	h := NewHeaderMap()
	for k, v := range rr.Headers {
		h.Set(k, v)
	}
	return &Response{StatusCode: rr.StatusCode, Headers: h, Data: rr.Data}
}

// mergeHeaders folds src's headers into dst without overwriting keys dst
// already has set, used when delta-set folds several batch responses into
// one: each batch's own headers are informational, not authoritative.
func mergeHeaders(dst *HeaderMap, src *HeaderMap) {
	if src == nil {
		return
	}
	for _, k := range src.originalKeys() {
		if !dst.Has(k) {
			v, _ := src.Get(k)
			dst.Set(k, v)
		}
	}
}

// originalKeys returns the header keys in their caller-supplied casing.
func (h *HeaderMap) originalKeys() []string {
	out := make([]string, 0, len(h.original))
	for _, k := range h.original {
		out = append(out, k)
	}
	return out
}
