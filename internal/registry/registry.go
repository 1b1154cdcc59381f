// Package registry maps (service, resourceType) pairs to verification and
// deletion handlers and applies the safety policy around them: when in
// doubt, a resource is reported as existing rather than hidden, and a
// deletion is refused rather than guessed.
package registry

import (
	"context"
	"fmt"

	"github.com/infrahouse/tagsweep/internal/arn"
	"github.com/infrahouse/tagsweep/internal/logging"
	"github.com/infrahouse/tagsweep/internal/resource"
)

// Key identifies one entry of the resource type taxonomy. Type is empty for
// services whose ARNs carry no resource type (s3, sns, sqs).
type Key struct {
	Service string
	Type    string
}

// Handler verifies and deletes resources of one (service, type) pair. Both
// methods receive the full identity: each entry addresses its API by short
// id or by raw ARN, whichever that resource type requires, and the choice
// lives with the handler rather than at the call site.
type Handler interface {
	// Verify reports whether the resource still physically exists. A nil
	// error with false means the read succeeded but the resource is in a
	// terminal or pending-deletion state.
	Verify(ctx context.Context, id *arn.Identity) (bool, error)
	// Delete tears the resource down, running any ordered sub-deletion
	// first. On success it returns a human-readable action description.
	Delete(ctx context.Context, id *arn.Identity) (string, error)
}

// VerifyFunc matches Handler.Verify.
type VerifyFunc func(ctx context.Context, id *arn.Identity) (bool, error)

// DeleteFunc matches Handler.Delete.
type DeleteFunc func(ctx context.Context, id *arn.Identity) (string, error)

// HandlerFuncs adapts a function pair to Handler.
type HandlerFuncs struct {
	VerifyFunc VerifyFunc
	DeleteFunc DeleteFunc
}

func (h HandlerFuncs) Verify(ctx context.Context, id *arn.Identity) (bool, error) {
	return h.VerifyFunc(ctx, id)
}

func (h HandlerFuncs) Delete(ctx context.Context, id *arn.Identity) (string, error) {
	return h.DeleteFunc(ctx, id)
}

// Registry is the closed taxonomy of supported resource types. The notFound
// classifier decides which provider errors mean "confirmed absent"; every
// other error fails open.
type Registry struct {
	handlers map[Key]Handler
	notFound func(error) bool
}

func New(notFound func(error) bool) *Registry {
	return &Registry{
		handlers: make(map[Key]Handler),
		notFound: notFound,
	}
}

// Register adds a handler for one (service, resourceType) pair.
func (r *Registry) Register(service, resourceType string, h Handler) {
	r.handlers[Key{Service: service, Type: resourceType}] = h
}

// RegisterFuncs registers a verify/delete function pair.
func (r *Registry) RegisterFuncs(service, resourceType string, verify VerifyFunc, del DeleteFunc) {
	r.Register(service, resourceType, HandlerFuncs{VerifyFunc: verify, DeleteFunc: del})
}

// Verify classifies one identity as existing or absent. The policy is fail
// open: an unparseable identity, an unknown (service, type) pair, any error
// outside the not-found set, and even a panic in a handler all report the
// resource as existing. Only a confirmed not-found error or a handler's own
// terminal-state refinement yields absent.
func (r *Registry) Verify(ctx context.Context, id *arn.Identity) (exists bool) {
	defer func() {
		if p := recover(); p != nil {
			logging.Warn("verification panicked, assuming resource exists", "panic", p)
			exists = true
		}
	}()

	if id == nil {
		return true
	}
	h, ok := r.handlers[Key{Service: id.Service, Type: id.Type}]
	if !ok {
		return true
	}

	alive, err := h.Verify(ctx, id)
	if err != nil {
		if r.notFound(err) {
			return false
		}
		logging.Debug("verification error, assuming resource exists", "arn", id.Raw, "error", err)
		return true
	}
	return alive
}

// Delete executes the type-specific teardown for one identity. No error
// ever escapes to the caller: parse failures and unknown types produce a
// refusal outcome, provider errors and panics a failed one.
func (r *Registry) Delete(ctx context.Context, id *arn.Identity) (out resource.Outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = resource.Outcome{Detail: fmt.Sprintf("error: %v", p)}
		}
	}()

	if id == nil {
		return resource.Outcome{Detail: "cannot parse ARN"}
	}
	h, ok := r.handlers[Key{Service: id.Service, Type: id.Type}]
	if !ok {
		if id.Type == "" {
			return resource.Outcome{Detail: fmt.Sprintf("unknown service: %s", id.Service)}
		}
		return resource.Outcome{Detail: fmt.Sprintf("unknown resource type: %s/%s", id.Service, id.Type)}
	}

	detail, err := h.Delete(ctx, id)
	if err != nil {
		return resource.Outcome{Detail: err.Error()}
	}
	return resource.Outcome{Succeeded: true, Detail: detail}
}
