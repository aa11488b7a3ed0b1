// Package racks provides optional, concrete reference implementations of
// the rack.CacheRack / rack.NetworkRack contract. The request-execution
// core never imports this package directly; it depends only on the
// interfaces in package rack. These implementations exist for tests and
// example wiring.
package racks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kinvey/kinvey-go-sdk/rack"
)

// MemoryCacheRack is an in-process, map-backed CacheRack keyed by pathname.
// It stores one JSON document per full path (collection or entity), the
// same flat addressing every other rack in this package uses.
type MemoryCacheRack struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryCacheRack returns an empty MemoryCacheRack.
func NewMemoryCacheRack() *MemoryCacheRack {
	return &MemoryCacheRack{docs: make(map[string][]byte)}
}

// Execute implements rack.CacheRack. GET returns ErrRackNotFound when the
// pathname has never been written; PUT/POST upsert; DELETE removes.
func (m *MemoryCacheRack) Execute(_ context.Context, d rack.Descriptor) (rack.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch d.Method {
	case "GET":
		raw, ok := m.docs[d.Pathname]
		if !ok {
			return rack.Response{}, rack.ErrRackNotFound
		}
		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			return rack.Response{}, err
		}
		return rack.Response{StatusCode: 200, Data: data}, nil

	case "POST", "PUT", "PATCH":
		raw, err := json.Marshal(d.Data)
		if err != nil {
			return rack.Response{}, err
		}
		m.docs[d.Pathname] = raw
		status := 200
		if d.Method == "POST" {
			status = 201
		}
		return rack.Response{StatusCode: status, Data: d.Data}, nil

	case "DELETE":
		if _, ok := m.docs[d.Pathname]; !ok {
			return rack.Response{}, rack.ErrRackNotFound
		}
		delete(m.docs, d.Pathname)
		return rack.Response{StatusCode: 204}, nil

	default:
		return rack.Response{}, fmt.Errorf("memory cache rack: unsupported method %q", d.Method)
	}
}

var _ rack.CacheRack = (*MemoryCacheRack)(nil)
