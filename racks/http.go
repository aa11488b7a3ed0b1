package racks

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kinvey/kinvey-go-sdk/rack"
)

// HTTPNetworkRack is a NetworkRack backed by net/http, the reference
// transport for talking to the real remote backend. Authorization is
// expected to already be set on d.Headers by the time Execute is called
// (the core sets it during Step A); this rack only adds request-id framing
// for traced calls and performs the actual round trip.
type HTTPNetworkRack struct {
	client *http.Client
}

// NewHTTPNetworkRack returns an HTTPNetworkRack. transport may be nil to use
// http.DefaultTransport; wrap it with a *kinvey.DebugTransport beforehand to
// get the teacher's request/response dump logging.
func NewHTTPNetworkRack(transport http.RoundTripper) *HTTPNetworkRack {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &HTTPNetworkRack{client: &http.Client{Transport: transport}}
}

// Execute implements rack.NetworkRack: it builds an *http.Request from d,
// sends it, and decodes the body as JSON (falling back to the raw string
// when decoding fails, since not every endpoint returns JSON).
func (h *HTTPNetworkRack) Execute(ctx context.Context, d rack.Descriptor) (rack.Response, error) {
	var body io.Reader
	if d.Data != nil {
		raw, err := json.Marshal(d.Data)
		if err != nil {
			return rack.Response{}, err
		}
		body = bytes.NewReader(raw)
	}

	if d.TimeoutMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(d.TimeoutMS)*time.Millisecond)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, d.URL, body)
	if err != nil {
		return rack.Response{}, err
	}
	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}
	if _, traced := d.Headers["X-Kinvey-Include-Headers-In-Response"]; traced {
		req.Header.Set("X-Kinvey-Request-Id", uuid.NewString())
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return rack.Response{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return rack.Response{}, err
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	var data any
	if len(raw) == 0 {
		data = nil
	} else if err := json.Unmarshal(raw, &data); err != nil {
		data = string(raw)
	}

	return rack.Response{StatusCode: resp.StatusCode, Headers: headers, Data: data}, nil
}

var _ rack.NetworkRack = (*HTTPNetworkRack)(nil)
