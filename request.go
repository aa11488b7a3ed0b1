package kinvey

import (
	"fmt"
	"sync/atomic"
	"time"

	kerrors "github.com/kinvey/kinvey-go-sdk/internal/errors"
	"github.com/kinvey/kinvey-go-sdk/internal/types"
	"github.com/kinvey/kinvey-go-sdk/rack"
)

const (
	headerAccept                = "Accept"
	headerAPIVersion             = "X-Kinvey-Api-Version"
	headerDeviceInformation      = "X-Kinvey-Device-Information"
	headerContentTypeHint        = "X-Kinvey-Content-Type"
	headerSkipBusinessLogic      = "X-Kinvey-Skip-Business-Logic"
	headerIncludeHeadersInResp   = "X-Kinvey-Include-Headers-In-Response"
	headerResponseWrapper        = "X-Kinvey-ResponseWrapper"
	headerClientAppVersion       = "X-Kinvey-Client-App-Version"
	headerCustomRequestProps     = "X-Kinvey-Custom-Request-Properties"
	headerContentType            = "Content-Type"
	headerAuthorization          = "Authorization"
	headerRequestID               = "X-Kinvey-Request-Id"
	defaultContentType           = "application/json; charset=utf-8"
)

// Request is the central object of this package: method, URL parts, query,
// body, policy, credentials, and timeout, all mutated only through its own
// setters and by execute(). It is not reusable while executing is true.
type Request struct {
	client *Client

	method   types.Method
	protocol string
	host     string
	pathname string

	query  *types.Query
	search map[string]string
	data   any

	headers           *HeaderMap
	responseType      types.ResponseType
	requestProperties RequestProperties

	auth       Auth
	dataPolicy types.DataPolicy
	timeout    time.Duration

	skipSync bool
	trace    bool

	executing uint32
}

// NewRequest constructs a Request against client with the given pathname,
// filling in the defaults from spec §4.1: method=GET, policy=PreferLocal,
// responseType=Text, timeout=the client's configured default, skipSync=false.
// Standard headers (Accept, API version, device information) are installed
// immediately; opts may override any of them before the caller calls Execute.
func NewRequest(client *Client, pathname string, opts ...ReqOption) (*Request, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	r := &Request{
		client:       client,
		method:       types.MethodGet,
		protocol:     client.protocol,
		host:         client.host,
		pathname:     pathname,
		headers:      NewHeaderMap(),
		responseType: types.Text,
		auth:         client.auth,
		dataPolicy:   types.PreferLocal,
		timeout:      client.defaultTimeout,
	}
	r.headers.Set(headerAccept, "application/json")
	r.headers.Set(headerAPIVersion, fmt.Sprintf("%d", client.apiVersion))
	r.headers.Set(headerDeviceInformation, client.deviceInfo)

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ReqOption configures a Request during NewRequest, mirroring the Client's
// functional-option shape.
type ReqOption func(*Request) error

// WithMethod sets the request's HTTP method, validating it against the
// allowed set (see SetMethod).
func WithMethod(method string) ReqOption {
	return func(r *Request) error { return r.SetMethod(method) }
}

// WithData sets the request body (see SetData).
func WithData(data any) ReqOption {
	return func(r *Request) error { r.SetData(data); return nil }
}

// WithDataPolicy sets the data policy governing dispatch.
func WithDataPolicy(policy types.DataPolicy) ReqOption {
	return func(r *Request) error { r.dataPolicy = policy; return nil }
}

// WithResponseType sets the semantic response type (see SetResponseType).
func WithResponseType(rt types.ResponseType) ReqOption {
	return func(r *Request) error { r.SetResponseType(rt); return nil }
}

// WithQuery sets the structured query.
func WithQuery(q *types.Query) ReqOption {
	return func(r *Request) error { r.query = q; return nil }
}

// WithSearch sets the parsed query-string mapping. Per spec §9, this is
// never spliced back into url(); a rack re-composes the URL from
// pathname+query and treats search as auxiliary metadata.
func WithSearch(search map[string]string) ReqOption {
	return func(r *Request) error { r.search = search; return nil }
}

// WithRequestProperties sets custom per-request metadata (see
// SetRequestProperties).
func WithRequestProperties(p RequestProperties) ReqOption {
	return func(r *Request) error { return r.SetRequestProperties(p) }
}

// WithSkipSync disables SyncNotifier bookkeeping for this request.
func WithSkipSync(skip bool) ReqOption {
	return func(r *Request) error { r.skipSync = skip; return nil }
}

// WithTimeout overrides the request's timeout.
func WithTimeout(d time.Duration) ReqOption {
	return func(r *Request) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be > 0")
		}
		r.timeout = d
		return nil
	}
}

// WithRequestAuth overrides the request's credential source, independent of
// the client's configured default.
func WithRequestAuth(a Auth) ReqOption {
	return func(r *Request) error { r.auth = a; return nil }
}

// WithContentTypeHint sets X-Kinvey-Content-Type.
func WithContentTypeHint(contentType string) ReqOption {
	return func(r *Request) error { r.headers.Set(headerContentTypeHint, contentType); return nil }
}

// WithSkipBusinessLogic sets X-Kinvey-Skip-Business-Logic: true.
func WithSkipBusinessLogic() ReqOption {
	return func(r *Request) error { r.headers.Set(headerSkipBusinessLogic, "true"); return nil }
}

// WithTrace requests X-Kinvey-Request-Id generation and the
// Include-Headers-In-Response/ResponseWrapper header pair.
func WithTrace() ReqOption {
	return func(r *Request) error {
		r.trace = true
		r.headers.Set(headerIncludeHeadersInResp, headerRequestID)
		r.headers.Set(headerResponseWrapper, "true")
		return nil
	}
}

// SetMethod coerces, uppercases, and validates method, rejecting unsupported
// verbs with InvalidInput.
func (r *Request) SetMethod(method string) error {
	m, err := types.ParseMethod(method)
	if err != nil {
		return err
	}
	r.method = m
	return nil
}

// Method returns the request's current HTTP method.
func (r *Request) Method() types.Method { return r.method }

// SetData assigns the request body. Per spec §4.1, assigning non-nil data
// defaults Content-Type to application/json when no header is already
// present; assigning nil removes Content-Type.
func (r *Request) SetData(data any) {
	r.data = data
	if data == nil {
		r.headers.Remove(headerContentType)
		return
	}
	if !r.headers.Has(headerContentType) {
		r.headers.Set(headerContentType, defaultContentType)
	}
}

// Data returns the request's current body.
func (r *Request) Data() any { return r.data }

// SetResponseType stores the semantic response type. It sets no header;
// toJSON maps it to the rack's transport hint (see TransportHint) in the
// descriptor's ResponseType field.
func (r *Request) SetResponseType(rt types.ResponseType) { r.responseType = rt }

// SetRequestProperties re-serializes p, enforcing the client's configured
// size cap, extracts appVersion into its own header (or removes that header
// if appVersion is empty), and always sets the full custom-properties
// header.
func (r *Request) SetRequestProperties(p RequestProperties) error {
	serialized, err := p.validate(r.client.maxCustomPropsBytes)
	if err != nil {
		return err
	}
	r.requestProperties = p
	if p.AppVersion != "" {
		r.headers.Set(headerClientAppVersion, p.AppVersion)
	} else {
		r.headers.Remove(headerClientAppVersion)
	}
	r.headers.Set(headerCustomRequestProps, serialized)
	return nil
}

// Headers exposes the request's HeaderMap for direct Set/Get/Remove.
func (r *Request) Headers() *HeaderMap { return r.headers }

// SetPathname overrides the request's pathname, used when a sub-request
// targets a different resource (e.g. SyncNotifier's sync document).
func (r *Request) SetPathname(pathname string) { r.pathname = pathname }

// Pathname returns the request's current pathname.
func (r *Request) Pathname() string { return r.pathname }

// DataPolicy returns the request's current data policy.
func (r *Request) DataPolicy() types.DataPolicy { return r.dataPolicy }

// url renders "{protocol}://{host}{pathname}".
func (r *Request) url() string {
	return fmt.Sprintf("%s://%s%s", r.protocol, r.host, r.pathname)
}

// toJSON returns the plain descriptor handed off to a rack.
func (r *Request) toJSON() rack.Descriptor {
	return rack.Descriptor{
		Method:       string(r.method),
		Headers:      r.headers.ToMap(),
		URL:          r.url(),
		Pathname:     r.pathname,
		Query:        r.query,
		Search:       r.search,
		Data:         r.data,
		ResponseType: r.responseType.TransportHint(false),
		TimeoutMS:    int(r.timeout / time.Millisecond),
	}
}

// clone returns a new Request sharing this one's client, protocol, host,
// pathname, query, search, auth, and timeout, independently executable.
// The policy dispatcher uses it to build every sub-request rather than
// mutating the original (spec §9, "sub-request explosion").
func (r *Request) clone() *Request {
	return &Request{
		client:       r.client,
		method:       r.method,
		protocol:     r.protocol,
		host:         r.host,
		pathname:     r.pathname,
		query:        r.query.Clone(),
		search:       cloneStringMap(r.search),
		data:         r.data,
		headers:      r.headers.Clone(),
		responseType: r.responseType,
		auth:         r.auth,
		dataPolicy:   r.dataPolicy,
		timeout:      r.timeout,
		skipSync:     r.skipSync,
		trace:        r.trace,
	}
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// beginExecuting atomically transitions executing from false to true,
// returning an AlreadyExecuting error if a previous call has not settled.
func (r *Request) beginExecuting() error {
	if !atomic.CompareAndSwapUint32(&r.executing, 0, 1) {
		return kerrors.New(kerrors.AlreadyExecuting, "execute() called while a previous call is still in flight")
	}
	return nil
}

// endExecuting clears the executing flag. It runs on every exit path of
// Execute, success or failure.
func (r *Request) endExecuting() {
	atomic.StoreUint32(&r.executing, 0)
}

// Executing reports whether a call to Execute is currently in flight.
func (r *Request) Executing() bool {
	return atomic.LoadUint32(&r.executing) != 0
}
