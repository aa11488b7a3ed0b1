package kinvey

import (
	"context"

	kerrors "github.com/kinvey/kinvey-go-sdk/internal/errors"
	"github.com/kinvey/kinvey-go-sdk/internal/types"
)

// Execute runs the request's state machine: re-entry guard, credential
// resolution (Step A), policy dispatch (Step B), and final validation
// (Step C). executing is cleared on every exit path.
func (r *Request) Execute(ctx context.Context) (*Response, error) {
	if err := r.beginExecuting(); err != nil {
		return nil, err
	}
	defer r.endExecuting()

	if err := r.resolveCredentials(ctx); err != nil {
		return nil, err
	}

	resp, err := dispatch(ctx, r)
	if err != nil {
		return nil, err
	}

	return finalize(resp)
}

// resolveCredentials implements Step A: invoke a closure auth exactly once,
// or use a static descriptor directly, then set Authorization.
func (r *Request) resolveCredentials(ctx context.Context) error {
	if r.auth.IsZero() {
		return nil
	}
	desc, err := r.auth.resolve(ctx, r.client)
	if err != nil {
		return err
	}
	if desc == nil {
		return nil
	}
	r.headers.Set(headerAuthorization, desc.header())
	return nil
}

// finalize implements Step C: no response is a logic bug (NoResponse); a
// non-success response has its body lifted as a server error envelope into
// one of the three envelope-derived kinds.
func finalize(resp *Response) (*Response, error) {
	if resp == nil {
		return nil, kerrors.New(kerrors.NoResponse, "policy dispatcher completed without producing a response")
	}
	if resp.IsSuccess() {
		return resp, nil
	}

	env, ok := types.DecodeErrorEnvelope(resp.Data)
	if !ok {
		return nil, kerrors.New(kerrors.KinveyError, "request failed")
	}
	return nil, kerrors.ClassifyEnvelope(resp.StatusCode, env.Name, env.Message, env.Description, env.ErrorField, env.Debug)
}
