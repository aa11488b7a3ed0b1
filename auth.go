package kinvey

import (
	"context"
	"encoding/base64"
	"fmt"
)

// AuthDescriptor carries resolved credentials for the Authorization header.
// Exactly one of the two credential shapes is meaningful at a time: if
// Username is set, Username:Password is base64-framed; otherwise
// Credentials is used verbatim.
type AuthDescriptor struct {
	Scheme      string // defaults to "Basic" when empty
	Username    string
	Password    string
	Credentials string
}

// header renders the Authorization header value for this descriptor.
func (d AuthDescriptor) header() string {
	scheme := d.Scheme
	if scheme == "" {
		scheme = "Basic"
	}
	creds := d.Credentials
	if d.Username != "" {
		raw := d.Username + ":" + d.Password
		creds = base64.StdEncoding.EncodeToString([]byte(raw))
	}
	return fmt.Sprintf("%s %s", scheme, creds)
}

// AuthResolver resolves an AuthDescriptor for a request, given the client
// the request belongs to. It is invoked at most once per Execute call.
type AuthResolver func(ctx context.Context, c *Client) (AuthDescriptor, error)

// Auth is the two-variant sum the spec calls for: either a value known up
// front (static) or a zero-arg-returning-descriptor closure evaluated once
// per execute().
type Auth struct {
	static   *AuthDescriptor
	resolver AuthResolver
}

// StaticAuth wraps a fixed AuthDescriptor.
func StaticAuth(d AuthDescriptor) Auth {
	return Auth{static: &d}
}

// ClosureAuth wraps a resolver invoked once per Execute call.
func ClosureAuth(fn AuthResolver) Auth {
	return Auth{resolver: fn}
}

// IsZero reports whether no auth was configured at all.
func (a Auth) IsZero() bool {
	return a.static == nil && a.resolver == nil
}

// resolve evaluates the auth exactly once: the closure variant is invoked
// with the owning client; the static variant is returned as-is.
func (a Auth) resolve(ctx context.Context, c *Client) (*AuthDescriptor, error) {
	if a.resolver != nil {
		d, err := a.resolver(ctx, c)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}
	return a.static, nil
}
