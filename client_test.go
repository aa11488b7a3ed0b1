package kinvey

import "testing"

func TestNewRequiresRacks(t *testing.T) {
	if _, err := New("https", "baas.kinvey.com"); err == nil {
		t.Fatalf("expected error when no racks are configured")
	}

	cache := newStubRack()
	if _, err := New("https", "baas.kinvey.com", WithCacheRack(cache)); err == nil {
		t.Fatalf("expected error when only a cache rack is configured")
	}
}

func TestNewTrimsTrailingSlashFromHost(t *testing.T) {
	cache, network := newStubRack(), newStubRack()
	c, err := New("https", "baas.kinvey.com/", WithCacheRack(cache), WithNetworkRack(network))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.host != "baas.kinvey.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", c.host)
	}
}

func TestNewRejectsEmptyProtocolOrHost(t *testing.T) {
	if _, err := New("", "baas.kinvey.com"); err == nil {
		t.Fatalf("expected error for empty protocol")
	}
	if _, err := New("https", ""); err == nil {
		t.Fatalf("expected error for empty host")
	}
}

func TestClientCloseIdempotent(t *testing.T) {
	cache, network := newStubRack(), newStubRack()
	c, err := New("https", "baas.kinvey.com", WithCacheRack(cache), WithNetworkRack(network))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got: %v", err)
	}
}

func TestWithAPIVersionRejectsNonPositive(t *testing.T) {
	cache, network := newStubRack(), newStubRack()
	if _, err := New("https", "baas.kinvey.com", WithCacheRack(cache), WithNetworkRack(network), WithAPIVersion(0)); err == nil {
		t.Fatalf("expected error for non-positive api version")
	}
}
