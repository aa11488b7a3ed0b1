package kinvey

import "strings"

// HeaderMap is a case-insensitive header store: lookups and removals fold
// case, while Set preserves the caller's original casing for output.
type HeaderMap struct {
	original map[string]string // lower(key) -> caller's original-case key
	values   map[string]string // lower(key) -> value
}

// NewHeaderMap returns an empty HeaderMap.
func NewHeaderMap() *HeaderMap {
	return &HeaderMap{original: make(map[string]string), values: make(map[string]string)}
}

// Set stores value under key, preserving key's case for later output while
// folding it for lookup. A second Set with different casing overwrites the
// value but keeps replacing the stored original-case key with the latest.
func (h *HeaderMap) Set(key, value string) {
	lk := strings.ToLower(key)
	h.original[lk] = key
	h.values[lk] = value
}

// Get returns the value stored for key and whether it was present, folding
// case on lookup.
func (h *HeaderMap) Get(key string) (string, bool) {
	v, ok := h.values[strings.ToLower(key)]
	return v, ok
}

// Has reports whether key is present, folding case.
func (h *HeaderMap) Has(key string) bool {
	_, ok := h.Get(key)
	return ok
}

// Remove deletes key, folding case so it matches however the header was
// originally stored.
func (h *HeaderMap) Remove(key string) {
	lk := strings.ToLower(key)
	delete(h.original, lk)
	delete(h.values, lk)
}

// Clear removes every header.
func (h *HeaderMap) Clear() {
	h.original = make(map[string]string)
	h.values = make(map[string]string)
}

// Clone returns an independent copy so sub-requests can mutate their own
// headers without affecting the Request they were cloned from.
func (h *HeaderMap) Clone() *HeaderMap {
	out := NewHeaderMap()
	for lk, key := range h.original {
		out.original[lk] = key
		out.values[lk] = h.values[lk]
	}
	return out
}

// ToMap returns a plain map keyed by the original caller-supplied casing,
// the shape a rack descriptor carries.
func (h *HeaderMap) ToMap() map[string]string {
	out := make(map[string]string, len(h.values))
	for lk, v := range h.values {
		out[h.original[lk]] = v
	}
	return out
}
