package kinvey

import (
	"context"
	"errors"

	"github.com/kinvey/kinvey-go-sdk/internal/types"
	"github.com/kinvey/kinvey-go-sdk/rack"
)

// dispatch implements execute()'s Step B: it picks and sequences calls to
// the two racks per r.dataPolicy, including write-back mirroring.
func dispatch(ctx context.Context, r *Request) (*Response, error) {
	requestsDispatchedTotal.WithLabelValues(r.dataPolicy.String(), string(r.method)).Inc()

	switch r.dataPolicy {
	case types.ForceLocal:
		return dispatchForceLocal(ctx, r)
	case types.LocalOnly:
		return executeLocal(ctx, r)
	case types.ForceNetwork:
		return executeNetwork(ctx, r)
	case types.PreferNetwork:
		return dispatchPreferNetwork(ctx, r)
	case types.PreferLocal:
		if r.method == types.MethodGet {
			return dispatchPreferLocalGet(ctx, r)
		}
		return dispatchPreferLocalMutating(ctx, r)
	default:
		return nil, nil // surfaces as NoResponse in finalize
	}
}

// executeLocal runs r against the cache rack.
func executeLocal(ctx context.Context, r *Request) (*Response, error) {
	resp, err := r.client.cacheRack.Execute(ctx, r.toJSON())
	if err != nil {
		return nil, err
	}
	return responseFromRack(resp), nil
}

// executeNetwork runs r against the network rack.
func executeNetwork(ctx context.Context, r *Request) (*Response, error) {
	resp, err := r.client.networkRack.Execute(ctx, r.toJSON())
	if err != nil {
		return nil, err
	}
	return responseFromRack(resp), nil
}

// dispatchForceLocal runs the local rack only, notifying the sync
// collection on a successful mutating write that isn't explicitly skipped.
func dispatchForceLocal(ctx context.Context, r *Request) (*Response, error) {
	resp, err := executeLocal(ctx, r)
	if err != nil {
		return nil, err
	}
	if resp.IsSuccess() && r.method.IsMutating() && !r.skipSync {
		if err := notifySync(ctx, r, resp.Data); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// dispatchPreferLocalGet runs the local rack first. A NotFound rack error is
// synthesized into an empty 404 so the escalation logic below has a uniform
// response to inspect. Any other local error propagates unchanged.
func dispatchPreferLocalGet(ctx context.Context, r *Request) (*Response, error) {
	localResp, err := executeLocal(ctx, r)
	var finalResp *Response
	if err != nil {
		if !errors.Is(err, rack.ErrRackNotFound) {
			return nil, err
		}
		finalResp = &Response{StatusCode: 404, Headers: NewHeaderMap(), Data: []any{}}
	} else {
		finalResp = localResp
	}

	if finalResp.IsSuccess() {
		return finalResp, nil
	}

	escalated := r.clone()
	escalated.dataPolicy = types.PreferNetwork
	escalated.SetData(finalResp.Data)
	return escalated.Execute(ctx)
}

// dispatchPreferLocalMutating runs the network rack directly (not through a
// full PreferNetwork dispatch, so no mirror write happens on success — the
// server-side write is authoritative for this branch). On network failure,
// a ForceLocal write persists the change offline for later sync replay,
// and the original network error is returned.
func dispatchPreferLocalMutating(ctx context.Context, r *Request) (*Response, error) {
	netResp, netErr := executeNetwork(ctx, r)
	if netErr == nil && netResp.IsSuccess() {
		return netResp, nil
	}

	local := r.clone()
	local.dataPolicy = types.ForceLocal
	if _, err := dispatchForceLocal(ctx, local); err != nil {
		return nil, err
	}

	if netErr != nil {
		return nil, netErr
	}
	return finalize(netResp)
}

// dispatchPreferNetwork runs the network rack, mirrors a successful result
// into the cache, and falls back to the cache on a failed GET. The mirror
// write is skipSync: it reflects data the server already has, not a pending
// local mutation, so it must not be queued for replay by SyncManager.Push.
func dispatchPreferNetwork(ctx context.Context, r *Request) (*Response, error) {
	netResp, err := executeNetwork(ctx, r)
	if err != nil {
		return nil, err
	}

	if netResp.IsSuccess() {
		mirror := r.clone()
		mirror.dataPolicy = types.ForceLocal
		if r.method == types.MethodGet {
			mirror.method = types.MethodPut
		}
		mirror.skipSync = true
		mirror.SetData(netResp.Data)
		if _, mErr := mirror.Execute(ctx); mErr != nil {
			return nil, mErr
		}
		return netResp, nil
	}

	if r.method == types.MethodGet {
		fallback := r.clone()
		fallback.dataPolicy = types.ForceLocal
		fallback.SetData(netResp.Data)
		return fallback.Execute(ctx)
	}

	return finalize(netResp)
}
