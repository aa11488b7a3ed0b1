package kinvey

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kinvey/kinvey-go-sdk/internal/config"
	"github.com/kinvey/kinvey-go-sdk/rack"
)

// defaultDeviceInfo identifies this SDK in the X-Kinvey-Device-Information
// header, the same role the teacher's defaultUserAgent plays for its
// User-Agent.
const defaultDeviceInfo = "kinvey-go-sdk"

// Client is the shared, borrowed configuration every Request references:
// protocol/host, the two racks, and the handful of env-tunable defaults
// from spec §6. It owns no connections of its own — the racks do.
type Client struct {
	protocol string
	host     string

	cacheRack   rack.CacheRack
	networkRack rack.NetworkRack

	apiVersion          int
	deviceInfo          string
	syncCollectionName  string
	maxCustomPropsBytes int
	maxIDsPerRequest    int
	defaultTimeout      time.Duration

	auth Auth

	debug      bool
	closedOnce uint32
}

// Option configures a Client during construction in New. Options run in
// the order given and may fail, matching the teacher's functional-option
// shape (type Option func(*Client) error).
type Option func(*Client) error

// New constructs a Client for the given protocol ("https") and host
// ("baas.kinvey.com"). Racks are required: New fails without both a
// CacheRack and a NetworkRack configured via options, since the dispatcher
// cannot do anything useful with neither store wired in.
func New(protocol, host string, opts ...Option) (*Client, error) {
	if protocol == "" {
		return nil, fmt.Errorf("protocol cannot be empty")
	}
	if host == "" {
		return nil, fmt.Errorf("host cannot be empty")
	}
	host = strings.TrimRight(host, "/")

	defs, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	c := &Client{
		protocol:            protocol,
		host:                host,
		deviceInfo:          defaultDeviceInfo,
		apiVersion:          defs.APIVersion,
		syncCollectionName:  defs.SyncCollectionName,
		maxCustomPropsBytes: defs.MaxCustomPropsBytes,
		maxIDsPerRequest:    defs.MaxIDsPerRequest,
		defaultTimeout:      time.Duration(defs.DefaultTimeoutMS) * time.Millisecond,
	}

	// Auto-enable debug via env variable without changing code, matching
	// the teacher's debugLoggingRequested wiring in New.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.cacheRack == nil {
		return nil, fmt.Errorf("a CacheRack is required (see WithCacheRack)")
	}
	if c.networkRack == nil {
		return nil, fmt.Errorf("a NetworkRack is required (see WithNetworkRack)")
	}

	return c, nil
}

// Close marks the client closed. It is idempotent and safe to call more
// than once, matching the teacher's atomic.CompareAndSwapUint32 pattern.
// Racks are owned by their constructors, not the Client, so Close does not
// reach into them; callers that built a closeable rack (e.g. a SQLite cache
// rack) are responsible for closing it themselves.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	return nil
}
