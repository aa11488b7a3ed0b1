package kinvey

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"time"

	"github.com/kinvey/kinvey-go-sdk/rack"
)

// WithCacheRack sets the local-store collaborator the dispatcher reads from
// and writes to for every policy branch that touches local data. Required.
func WithCacheRack(r rack.CacheRack) Option {
	return func(c *Client) error {
		if r == nil {
			return fmt.Errorf("cache rack cannot be nil")
		}
		c.cacheRack = r
		return nil
	}
}

// WithNetworkRack sets the remote-backend collaborator the dispatcher calls
// for every policy branch that touches the network. Required.
func WithNetworkRack(r rack.NetworkRack) Option {
	return func(c *Client) error {
		if r == nil {
			return fmt.Errorf("network rack cannot be nil")
		}
		c.networkRack = r
		return nil
	}
}

// WithAuth sets the credential source every Request resolves against during
// Execute's Step A.
func WithAuth(a Auth) Option {
	return func(c *Client) error {
		c.auth = a
		return nil
	}
}

// WithAPIVersion overrides the X-Kinvey-API-Version sent with every request.
func WithAPIVersion(v int) Option {
	return func(c *Client) error {
		if v <= 0 {
			return fmt.Errorf("api version must be > 0")
		}
		c.apiVersion = v
		return nil
	}
}

// WithDeviceInfo overrides the X-Kinvey-Device-Information header value.
func WithDeviceInfo(info string) Option {
	return func(c *Client) error {
		if info == "" {
			return fmt.Errorf("device info cannot be empty")
		}
		c.deviceInfo = info
		return nil
	}
}

// WithSyncCollectionName overrides the local collection SyncNotifier books
// pending offline mutations into. Defaults to "sync".
func WithSyncCollectionName(name string) Option {
	return func(c *Client) error {
		if name == "" {
			return fmt.Errorf("sync collection name cannot be empty")
		}
		c.syncCollectionName = name
		return nil
	}
}

// WithMaxCustomPropsBytes overrides the serialized size cap enforced on
// RequestProperties.
func WithMaxCustomPropsBytes(n int) Option {
	return func(c *Client) error {
		if n <= 0 {
			return fmt.Errorf("max custom props bytes must be > 0")
		}
		c.maxCustomPropsBytes = n
		return nil
	}
}

// WithMaxIDsPerRequest overrides the batch size DeltaSetRequest uses when
// fetching full documents for changed ids.
func WithMaxIDsPerRequest(n int) Option {
	return func(c *Client) error {
		if n <= 0 {
			return fmt.Errorf("max ids per request must be > 0")
		}
		c.maxIDsPerRequest = n
		return nil
	}
}

// WithDefaultTimeout overrides the default per-request timeout passed to the
// racks when a Request does not set its own.
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("default timeout must be > 0")
		}
		c.defaultTimeout = d
		return nil
	}
}

// WithDebugLogging sets the Client's debug flag. No code in this module reads
// the flag: racks.NewHTTPNetworkRack uses whatever transport it is given, and
// DebugTransport's dumps are gated on the KINVEY_DEBUG/DEBUG environment
// variables alone.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}
