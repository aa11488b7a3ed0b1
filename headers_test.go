package kinvey

import "testing"

func TestHeaderMapCaseInsensitive(t *testing.T) {
	h := NewHeaderMap()
	h.Set("Content-Type", "application/json")

	if v, ok := h.Get("content-type"); !ok || v != "application/json" {
		t.Fatalf("expected case-insensitive get, got %q, %v", v, ok)
	}
	if !h.Has("CONTENT-TYPE") {
		t.Fatalf("expected case-insensitive Has")
	}

	h.Remove("content-TYPE")
	if h.Has("Content-Type") {
		t.Fatalf("expected header removed regardless of case")
	}
}

func TestHeaderMapPreservesOriginalCase(t *testing.T) {
	h := NewHeaderMap()
	h.Set("X-Kinvey-Api-Version", "3")

	m := h.ToMap()
	if _, ok := m["X-Kinvey-Api-Version"]; !ok {
		t.Fatalf("expected original casing preserved in ToMap, got %v", m)
	}
}

func TestHeaderMapClone(t *testing.T) {
	h := NewHeaderMap()
	h.Set("Accept", "application/json")
	clone := h.Clone()
	clone.Set("Accept", "text/plain")

	if v, _ := h.Get("Accept"); v != "application/json" {
		t.Fatalf("mutating clone affected original: %q", v)
	}
}
