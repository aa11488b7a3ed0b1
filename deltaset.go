package kinvey

import (
	"context"
	"errors"
	"sync"

	kerrors "github.com/kinvey/kinvey-go-sdk/internal/errors"
	"github.com/kinvey/kinvey-go-sdk/internal/types"
	"github.com/kinvey/kinvey-go-sdk/rack"
	"golang.org/x/sync/errgroup"
)

// DeltaSetRequest specializes Request for the GET+PreferNetwork case,
// fetching only records whose server-side lmt is newer than the locally
// cached one instead of the full collection.
type DeltaSetRequest struct {
	*Request
}

// NewDeltaSetRequest constructs a DeltaSetRequest the same way NewRequest
// builds a Request.
func NewDeltaSetRequest(client *Client, pathname string, opts ...ReqOption) (*DeltaSetRequest, error) {
	r, err := NewRequest(client, pathname, opts...)
	if err != nil {
		return nil, err
	}
	return &DeltaSetRequest{Request: r}, nil
}

// Execute runs the delta-set algorithm when dataPolicy==PreferNetwork and
// method==GET; every other combination delegates to the embedded Request's
// base Execute.
func (d *DeltaSetRequest) Execute(ctx context.Context) (*Response, error) {
	if d.dataPolicy != types.PreferNetwork || d.method != types.MethodGet {
		return d.Request.Execute(ctx)
	}

	if err := d.beginExecuting(); err != nil {
		return nil, err
	}
	origQuery := d.query
	resp, err, fallback := d.runDeltaSet(ctx, origQuery)
	d.query = origQuery
	d.endExecuting()

	if fallback {
		return d.Request.Execute(ctx)
	}
	return resp, err
}

// runDeltaSet implements algorithm steps 1-8. fallback=true signals the
// caller should discard resp/err and fall through to the base execute()
// (step 9: the network probe failed or was not successful, so there is no
// network set to diff against).
func (d *DeltaSetRequest) runDeltaSet(ctx context.Context, origQuery *types.Query) (*Response, error, bool) {
	if err := d.resolveCredentials(ctx); err != nil {
		return nil, err, false
	}

	d.query = types.Projection("_id", "_kmd")

	localByID, err := d.fetchProbe(ctx, executeLocal)
	if err != nil {
		if !(errors.Is(err, rack.ErrRackNotFound) || kerrors.Of(err, kerrors.NotFound)) {
			return nil, err, false
		}
		localByID = map[string]types.EntityMeta{}
	}

	netResp, err := executeNetwork(ctx, d.Request)
	if err != nil {
		return nil, nil, true
	}
	if !netResp.IsSuccess() {
		return nil, nil, true
	}
	netByID := metaByID(netResp.Data)

	deltaIDs, unchangedIDs := diffIDs(localByID, netByID)

	collection := "unknown"
	if parts, err := types.ParsePath(d.pathname); err == nil {
		collection = parts.Collection
	}

	batchSize := d.client.maxIDsPerRequest
	var mu sync.Mutex
	var combinedData []any
	combinedHeaders := NewHeaderMap()
	seen := make(map[string]bool)

	fold := func(resp *Response) {
		mu.Lock()
		defer mu.Unlock()
		for _, item := range types.AsSlice(resp.Data) {
			id := types.ExtractEntityMeta(item).ID
			if id != "" {
				if seen[id] {
					continue
				}
				seen[id] = true
			}
			combinedData = append(combinedData, item)
		}
		mergeHeaders(combinedHeaders, resp.Headers)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, batch := range batchIDs(deltaIDs, batchSize) {
		batch := batch
		deltaSetBatchesTotal.WithLabelValues(collection).Inc()
		g.Go(func() error {
			sub := d.clone()
			sub.dataPolicy = types.PreferNetwork
			sub.query = origQuery.WithIDIn(batch)
			resp, err := sub.Execute(gctx)
			if err != nil {
				return err
			}
			fold(resp)
			return nil
		})
	}
	for _, batch := range batchIDs(unchangedIDs, batchSize) {
		batch := batch
		deltaSetBatchesTotal.WithLabelValues(collection).Inc()
		g.Go(func() error {
			sub := d.clone()
			sub.dataPolicy = types.ForceLocal
			sub.query = origQuery.WithIDIn(batch)
			resp, err := sub.Execute(gctx)
			if err != nil {
				return err
			}
			fold(resp)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err, false
	}

	if combinedData == nil {
		combinedData = []any{}
	}
	return &Response{StatusCode: 200, Headers: combinedHeaders, Data: combinedData}, nil, false
}

// fetchProbe runs exec against d.Request (whose query has already been
// replaced with the {_id,_kmd} projection) and indexes the result by id.
func (d *DeltaSetRequest) fetchProbe(ctx context.Context, exec func(context.Context, *Request) (*Response, error)) (map[string]types.EntityMeta, error) {
	resp, err := exec(ctx, d.Request)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, kerrors.New(kerrors.KinveyError, "delta-set probe failed")
	}
	return metaByID(resp.Data), nil
}

func metaByID(data any) map[string]types.EntityMeta {
	out := make(map[string]types.EntityMeta)
	for _, item := range types.AsSlice(data) {
		meta := types.ExtractEntityMeta(item)
		if meta.HasID {
			out[meta.ID] = meta
		}
	}
	return out
}

// diffIDs computes the delta set (network ids that are new or whose lmt is
// newer than the local copy) and the unchanged set (every remaining id from
// either side), so their union is exactly local ∪ network with no overlap.
func diffIDs(localByID, netByID map[string]types.EntityMeta) (delta, unchanged []string) {
	all := make(map[string]bool, len(localByID)+len(netByID))
	for id := range localByID {
		all[id] = true
	}
	for id := range netByID {
		all[id] = true
	}

	deltaSet := make(map[string]bool)
	for id, netMeta := range netByID {
		localMeta, ok := localByID[id]
		if isChanged(localMeta, ok, netMeta) {
			deltaSet[id] = true
		}
	}

	for id := range all {
		if deltaSet[id] {
			delta = append(delta, id)
		} else {
			unchanged = append(unchanged, id)
		}
	}
	return delta, unchanged
}

// isChanged applies the tie-break rule from spec §4.4: equal lmt values are
// up to date; missing _kmd on only one side counts as changed.
func isChanged(localMeta types.EntityMeta, localPresent bool, netMeta types.EntityMeta) bool {
	if !localPresent {
		return true
	}
	if localMeta.HasKMD != netMeta.HasKMD {
		return true
	}
	if !localMeta.HasKMD {
		return false
	}
	return netMeta.LMT > localMeta.LMT
}

// batchIDs splits ids into chunks of at most size, preserving order.
func batchIDs(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(ids)
	}
	var out [][]string
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[i:end])
	}
	return out
}
