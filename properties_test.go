package kinvey

import "testing"

func TestRequestPropertiesValidateUnderCap(t *testing.T) {
	p := RequestProperties{AppVersion: "1.0", Custom: map[string]any{"a": "b"}}
	serialized, err := p.validate(1024)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if serialized == "" {
		t.Fatalf("expected non-empty serialized properties")
	}
}

func TestRequestPropertiesValidateOverCap(t *testing.T) {
	p := RequestProperties{Custom: map[string]any{"a": "this is a long value that blows the cap"}}
	if _, err := p.validate(10); err == nil {
		t.Fatalf("expected error when serialized size >= cap")
	} else if !IsInvalidInput(err) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestRequestPropertiesMergedIncludesAppVersion(t *testing.T) {
	p := RequestProperties{AppVersion: "2.0", Custom: map[string]any{"x": 1}}
	m := p.merged()
	if m["appVersion"] != "2.0" {
		t.Fatalf("expected appVersion merged in, got %v", m)
	}
	if m["x"] != 1 {
		t.Fatalf("expected custom keys preserved, got %v", m)
	}
}
