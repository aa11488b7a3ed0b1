package kinvey

import (
	"context"

	"github.com/kinvey/kinvey-go-sdk/rack"
)

// stubRack is a minimal CacheRack/NetworkRack backed by a map keyed on
// pathname, with an optional per-call override, used across the test files
// in this package the way the teacher's stubExec backs client_core_test.go.
//
// When nothing is queued for a pathname: GET/DELETE against a pathname with
// no persisted write report ErrRackNotFound, while POST/PUT/PATCH synthesize
// a success response that echoes the request body AND persists it, so a
// later unqueued GET observes the write. This lets tests exercise read-after-
// write behavior (e.g. sync-document replay) without hand-rolling storage.
type stubRack struct {
	docs      map[string][]rack.Response
	persisted map[string]any
	execFn    func(ctx context.Context, d rack.Descriptor) (rack.Response, error)
	calls     []rack.Descriptor
	notFound  map[string]bool
}

func newStubRack() *stubRack {
	return &stubRack{
		docs:      make(map[string][]rack.Response),
		persisted: make(map[string]any),
		notFound:  make(map[string]bool),
	}
}

func (s *stubRack) Execute(ctx context.Context, d rack.Descriptor) (rack.Response, error) {
	s.calls = append(s.calls, d)
	if s.execFn != nil {
		return s.execFn(ctx, d)
	}
	if s.notFound[d.Pathname] && (d.Method == "GET" || d.Method == "DELETE") {
		return rack.Response{}, rack.ErrRackNotFound
	}
	if queued := s.docs[d.Pathname]; len(queued) > 0 {
		resp := queued[0]
		s.docs[d.Pathname] = queued[1:]
		return resp, nil
	}
	switch d.Method {
	case "GET":
		if data, ok := s.persisted[d.Pathname]; ok {
			return rack.Response{StatusCode: 200, Data: data}, nil
		}
		return rack.Response{}, rack.ErrRackNotFound
	case "DELETE":
		if _, ok := s.persisted[d.Pathname]; ok {
			delete(s.persisted, d.Pathname)
			return rack.Response{StatusCode: 204}, nil
		}
		return rack.Response{}, rack.ErrRackNotFound
	default:
		s.persisted[d.Pathname] = d.Data
		status := 200
		if d.Method == "POST" {
			status = 201
		}
		return rack.Response{StatusCode: status, Data: d.Data}, nil
	}
}

func (s *stubRack) queue(pathname string, resp rack.Response) {
	s.docs[pathname] = append(s.docs[pathname], resp)
}

var _ rack.CacheRack = (*stubRack)(nil)
var _ rack.NetworkRack = (*stubRack)(nil)

func newTestClient(t interface{ Fatalf(string, ...any) }, cache, network *stubRack) *Client {
	c, err := New("https", "baas.kinvey.com", WithCacheRack(cache), WithNetworkRack(network))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}
