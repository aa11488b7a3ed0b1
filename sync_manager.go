package kinvey

import (
	"context"
	"fmt"

	"github.com/kinvey/kinvey-go-sdk/internal/types"
	"golang.org/x/sync/errgroup"
)

// SyncManager replays and inspects the pending-operations documents
// SyncNotifier records, giving the "recorded... for later reconciliation"
// language in the sync design an actual reconciliation path.
type SyncManager struct {
	client     *Client
	namespace  string
	appID      string
	collection string
}

// NewSyncManager returns a manager over the sync document for
// {namespace, appID, collection}, the same triple notifySync derives from a
// request's pathname.
func NewSyncManager(client *Client, namespace, appID, collection string) *SyncManager {
	return &SyncManager{client: client, namespace: namespace, appID: appID, collection: collection}
}

func (m *SyncManager) pathname() string {
	return fmt.Sprintf("/%s/%s/%s/%s", m.namespace, m.appID, m.client.syncCollectionName, m.collection)
}

func (m *SyncManager) readDoc(ctx context.Context) (*types.SyncCollection, error) {
	parts := types.PathParts{Namespace: m.namespace, AppID: m.appID, Collection: m.collection}
	probe, err := NewRequest(m.client, "/", WithDataPolicy(types.LocalOnly))
	if err != nil {
		return nil, err
	}
	return readSyncDoc(ctx, probe, parts)
}

// Count returns the number of pending mutations recorded for this
// collection.
func (m *SyncManager) Count(ctx context.Context) (int, error) {
	doc, err := m.readDoc(ctx)
	if err != nil {
		return 0, err
	}
	return doc.Size, nil
}

// Clear discards every pending mutation for this collection without
// replaying them.
func (m *SyncManager) Clear(ctx context.Context) error {
	parts := types.PathParts{Namespace: m.namespace, AppID: m.appID, Collection: m.collection}
	probe, err := NewRequest(m.client, "/", WithDataPolicy(types.LocalOnly))
	if err != nil {
		return err
	}
	return writeSyncDoc(ctx, probe, parts, types.NewSyncCollection(m.collection))
}

// PushResult reports the outcome of replaying one pending entry.
type PushResult struct {
	ID    string
	Err   error
}

// Push replays every pending mutation against the network rack via a fresh
// ForceNetwork request, one per id, concurrently (entries target different
// ids so they are independent requests, unlike a single Request instance
// which must not be executed concurrently with itself). Successfully
// replayed entries are removed from the document; failed ones are left in
// place for a future Push. No retry/backoff is attempted within a single
// Push call.
func (m *SyncManager) Push(ctx context.Context) ([]PushResult, error) {
	doc, err := m.readDoc(ctx)
	if err != nil {
		return nil, err
	}
	if len(doc.Documents) == 0 {
		return nil, nil
	}

	type replay struct {
		id   string
		desc replayDescriptor
	}
	var jobs []replay
	for id, entry := range doc.Documents {
		d, ok := decodeReplayDescriptor(entry.Request)
		if !ok {
			continue
		}
		jobs = append(jobs, replay{id: id, desc: d})
	}

	results := make([]PushResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			sub, err := NewRequest(m.client, job.desc.Pathname,
				WithMethod(job.desc.Method),
				WithData(job.desc.Data),
				WithDataPolicy(types.ForceNetwork),
				WithSkipSync(true),
			)
			if err != nil {
				results[i] = PushResult{ID: job.id, Err: err}
				return nil
			}
			_, err = sub.Execute(gctx)
			results[i] = PushResult{ID: job.id, Err: err}
			return nil
		})
	}
	_ = g.Wait() // per-entry errors are carried in results, not the group error

	parts := types.PathParts{Namespace: m.namespace, AppID: m.appID, Collection: m.collection}
	probe, err := NewRequest(m.client, "/", WithDataPolicy(types.LocalOnly))
	if err != nil {
		return results, err
	}
	for _, res := range results {
		if res.Err == nil {
			doc.Delete(res.ID)
		}
	}
	if err := writeSyncDoc(ctx, probe, parts, doc); err != nil {
		return results, err
	}
	return results, nil
}

// replayDescriptor is the minimal shape Push needs to replay a pending
// mutation, decoded from the rack.Descriptor a SyncEntry stores verbatim.
type replayDescriptor struct {
	Method   string
	Pathname string
	Data     any
}

func decodeReplayDescriptor(stored any) (replayDescriptor, bool) {
	var d replayDescriptor
	if err := decodeInto(stored, &d); err != nil || d.Pathname == "" {
		return replayDescriptor{}, false
	}
	return d, true
}
