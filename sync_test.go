package kinvey

import (
	"context"
	"testing"

	"github.com/kinvey/kinvey-go-sdk/internal/types"
)

// TestNotifySyncIdempotentPerID exercises the invariant that replaying the
// same entity id through notifySync never double-counts the sync document's
// Size, since Put upserts rather than appends.
func TestNotifySyncIdempotentPerID(t *testing.T) {
	cache, network := newStubRack(), newStubRack()
	c := newTestClient(t, cache, network)

	r, err := NewRequest(c, "/appdata/app1/books",
		WithMethod("PUT"),
		WithDataPolicy(types.ForceLocal),
	)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	ctx := context.Background()
	data := map[string]any{"_id": "b1", "_kmd": map[string]any{"lmt": "2024-01-01T00:00:00.000Z"}}

	if err := notifySync(ctx, r, data); err != nil {
		t.Fatalf("first notifySync: %v", err)
	}
	if err := notifySync(ctx, r, data); err != nil {
		t.Fatalf("second notifySync: %v", err)
	}

	doc, err := readSyncDoc(ctx, r, types.PathParts{Namespace: "appdata", AppID: "app1", Collection: "books"})
	if err != nil {
		t.Fatalf("readSyncDoc: %v", err)
	}
	if doc.Size != 1 {
		t.Fatalf("expected size 1 after replaying the same id twice, got %d", doc.Size)
	}
}

func TestNotifySyncSkipsEntitiesWithoutID(t *testing.T) {
	cache, network := newStubRack(), newStubRack()
	c := newTestClient(t, cache, network)

	r, err := NewRequest(c, "/appdata/app1/books", WithMethod("PUT"), WithDataPolicy(types.ForceLocal))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	ctx := context.Background()
	if err := notifySync(ctx, r, map[string]any{"title": "no id here"}); err != nil {
		t.Fatalf("notifySync: %v", err)
	}

	doc, err := readSyncDoc(ctx, r, types.PathParts{Namespace: "appdata", AppID: "app1", Collection: "books"})
	if err != nil {
		t.Fatalf("readSyncDoc: %v", err)
	}
	if doc.Size != 0 {
		t.Fatalf("expected no entries recorded for an id-less entity, got size %d", doc.Size)
	}
}

func TestSyncDocPathname(t *testing.T) {
	cache, network := newStubRack(), newStubRack()
	c := newTestClient(t, cache, network)
	r, err := NewRequest(c, "/appdata/app1/books")
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	parts := types.PathParts{Namespace: "appdata", AppID: "app1", Collection: "books"}
	if got := syncDocPathname(r, parts); got != "/appdata/app1/sync/books" {
		t.Fatalf("expected /appdata/app1/sync/books, got %q", got)
	}
}
