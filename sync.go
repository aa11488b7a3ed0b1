package kinvey

import (
	"context"
	"errors"
	"fmt"

	kerrors "github.com/kinvey/kinvey-go-sdk/internal/errors"
	"github.com/kinvey/kinvey-go-sdk/internal/types"
	"github.com/kinvey/kinvey-go-sdk/rack"
)

// notifySync records a successful mutation against the local store in the
// collection's pending-operations document, so it can be replayed against
// the network later (see SyncManager.Push). It is invoked by
// dispatchForceLocal after every successful, non-skipped mutating write.
func notifySync(ctx context.Context, r *Request, data any) error {
	parts, err := types.ParsePath(r.pathname)
	if err != nil {
		return err
	}

	doc, err := readSyncDoc(ctx, r, parts)
	if err != nil {
		return err
	}

	for _, item := range types.AsSlice(data) {
		meta := types.ExtractEntityMeta(item)
		if !meta.HasID {
			continue
		}
		doc.Put(meta.ID, types.SyncEntry{Request: r.toJSON(), LMT: meta.LMT})
		syncEntriesWrittenTotal.WithLabelValues(r.client.syncCollectionName).Inc()
	}

	return writeSyncDoc(ctx, r, parts, doc)
}

// syncDocPathname builds the pathname of the sync document for collection,
// per spec §4.3: /{namespace}/{appId}/{syncCollection}/{collection}.
func syncDocPathname(r *Request, parts types.PathParts) string {
	return fmt.Sprintf("/%s/%s/%s/%s", parts.Namespace, parts.AppID, r.client.syncCollectionName, parts.Collection)
}

// readSyncDoc fetches the sync document for parts.Collection with a
// LocalOnly-policy GET, synthesizing an empty document when none exists.
func readSyncDoc(ctx context.Context, r *Request, parts types.PathParts) (*types.SyncCollection, error) {
	sub, err := NewRequest(r.client, syncDocPathname(r, parts),
		WithMethod("GET"),
		WithDataPolicy(types.LocalOnly),
	)
	if err != nil {
		return nil, err
	}

	resp, err := sub.Execute(ctx)
	if err != nil {
		if errors.Is(err, rack.ErrRackNotFound) || kerrors.Of(err, kerrors.NotFound) {
			return types.NewSyncCollection(parts.Collection), nil
		}
		return nil, err
	}

	var doc types.SyncCollection
	if err := decodeInto(resp.Data, &doc); err != nil || doc.ID == "" {
		return types.NewSyncCollection(parts.Collection), nil
	}
	if doc.Documents == nil {
		doc.Documents = make(map[string]types.SyncEntry)
	}
	return &doc, nil
}

// writeSyncDoc persists doc with a LocalOnly-policy PUT and skipSync=true,
// preventing infinite recursion back into notifySync.
func writeSyncDoc(ctx context.Context, r *Request, parts types.PathParts, doc *types.SyncCollection) error {
	sub, err := NewRequest(r.client, syncDocPathname(r, parts),
		WithMethod("PUT"),
		WithDataPolicy(types.LocalOnly),
		WithData(doc),
		WithSkipSync(true),
	)
	if err != nil {
		return err
	}
	_, err = sub.Execute(ctx)
	return err
}
