package kinvey

import (
	"testing"

	"github.com/kinvey/kinvey-go-sdk/internal/types"
)

func newTestRequest(t *testing.T, opts ...ReqOption) *Request {
	c := newTestClient(t, newStubRack(), newStubRack())
	r, err := NewRequest(c, "/appdata/app1/books", opts...)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	return r
}

func TestNewRequestDefaults(t *testing.T) {
	r := newTestRequest(t)
	if r.Method() != types.MethodGet {
		t.Fatalf("expected default method GET, got %v", r.Method())
	}
	if r.DataPolicy() != types.PreferLocal {
		t.Fatalf("expected default policy PreferLocal, got %v", r.DataPolicy())
	}
	if !r.Headers().Has("Accept") {
		t.Fatalf("expected Accept header installed by default")
	}
}

func TestSetMethodUppercasesAndValidates(t *testing.T) {
	r := newTestRequest(t)
	if err := r.SetMethod("post"); err != nil {
		t.Fatalf("SetMethod: %v", err)
	}
	if r.Method() != types.MethodPost {
		t.Fatalf("expected POST, got %v", r.Method())
	}

	if err := r.SetMethod("TRACE"); err == nil {
		t.Fatalf("expected error for unsupported method")
	} else if !IsInvalidInput(err) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestSetDataTogglesContentType(t *testing.T) {
	r := newTestRequest(t)
	r.SetData(map[string]any{"title": "T"})
	if v, ok := r.Headers().Get("Content-Type"); !ok || v != defaultContentType {
		t.Fatalf("expected default content-type set, got %q, %v", v, ok)
	}

	r.SetData(nil)
	if r.Headers().Has("Content-Type") {
		t.Fatalf("expected content-type removed when data is nil")
	}
}

func TestSetDataDoesNotOverrideExplicitContentType(t *testing.T) {
	r := newTestRequest(t, WithContentTypeHint("text/plain"))
	r.Headers().Set("Content-Type", "text/plain; charset=utf-8")
	r.SetData("raw body")
	if v, _ := r.Headers().Get("Content-Type"); v != "text/plain; charset=utf-8" {
		t.Fatalf("expected explicit content-type preserved, got %q", v)
	}
}

func TestSetRequestPropertiesSizeCap(t *testing.T) {
	c := newTestClient(t, newStubRack(), newStubRack())
	if err := WithMaxCustomPropsBytes(20)(c); err != nil {
		t.Fatalf("option: %v", err)
	}
	r, err := NewRequest(c, "/appdata/app1/books")
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	small := RequestProperties{Custom: map[string]any{"a": 1}}
	if err := r.SetRequestProperties(small); err != nil {
		t.Fatalf("expected small properties to fit, got %v", err)
	}

	big := RequestProperties{Custom: map[string]any{"a": "way more bytes than the configured cap allows"}}
	if err := r.SetRequestProperties(big); err == nil {
		t.Fatalf("expected oversized properties to fail")
	} else if !IsInvalidInput(err) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := newTestRequest(t, WithQuery(types.Projection("_id")))
	clone := r.clone()
	clone.SetPathname("/appdata/app1/other")
	clone.query = clone.query.WithIDIn([]string{"x"})

	if r.Pathname() == clone.Pathname() {
		t.Fatalf("expected clone pathname independent of original")
	}
	if len(r.query.Filter) != 0 {
		t.Fatalf("expected original query untouched by clone mutation")
	}
}
