package kinvey

import (
	"context"
	"testing"

	kerrors "github.com/kinvey/kinvey-go-sdk/internal/errors"
	"github.com/kinvey/kinvey-go-sdk/internal/types"
	"github.com/kinvey/kinvey-go-sdk/rack"
)

func TestExecuteRejectsReentrantCall(t *testing.T) {
	cache, network := newStubRack(), newStubRack()
	c := newTestClient(t, cache, network)
	r, err := NewRequest(c, "/appdata/app1/books", WithDataPolicy(types.ForceLocal), WithMethod("GET"))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	if err := r.beginExecuting(); err != nil {
		t.Fatalf("beginExecuting: %v", err)
	}
	defer r.endExecuting()

	if _, err := r.Execute(context.Background()); err == nil {
		t.Fatalf("expected AlreadyExecuting error")
	} else if !IsAlreadyExecuting(err) {
		t.Fatalf("expected AlreadyExecuting, got %v", err)
	}
}

func TestExecuteClearsFlagOnSuccessAndFailure(t *testing.T) {
	cache, network := newStubRack(), newStubRack()
	c := newTestClient(t, cache, network)

	cache.queue("/appdata/app1/books/b1", rack.Response{StatusCode: 200, Data: map[string]any{"_id": "b1"}})
	ok, err := NewRequest(c, "/appdata/app1/books/b1", WithDataPolicy(types.ForceLocal), WithMethod("GET"))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if _, err := ok.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ok.Executing() {
		t.Fatalf("expected executing cleared after success")
	}

	failing, err := NewRequest(c, "/appdata/app1/missing", WithDataPolicy(types.ForceLocal), WithMethod("GET"))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if _, err := failing.Execute(context.Background()); err == nil {
		t.Fatalf("expected error for unqueued path")
	}
	if failing.Executing() {
		t.Fatalf("expected executing cleared after failure")
	}
}

func TestFinalizeClassifiesEnvelope(t *testing.T) {
	resp := &Response{
		StatusCode: 404,
		Headers:    NewHeaderMap(),
		Data: map[string]any{
			"name":    "EntityNotFound",
			"message": "not found",
		},
	}
	if _, err := finalize(resp); err == nil {
		t.Fatalf("expected classified error")
	} else if !IsNotFound(err) {
		t.Fatalf("expected NotFound kind, got %v", err)
	}
}

func TestFinalizeNilResponseIsNoResponse(t *testing.T) {
	if _, err := finalize(nil); err == nil {
		t.Fatalf("expected error for nil response")
	} else if !kerrors.Of(err, kerrors.NoResponse) {
		t.Fatalf("expected NoResponse kind, got %v", err)
	}
}
