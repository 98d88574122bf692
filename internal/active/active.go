// Package active holds the process-wide default registry and per-task
// overrides carried in a context.Context.
//
// The default slot is replaced atomically and in full. A task that needs a
// different registry, rounding mode or rescale policy binds them with With
// or Do; the binding lives only in the derived context, so concurrent tasks
// never see each other's overrides and nothing has to be restored by hand.
package active

import (
	"context"
	"sync/atomic"

	"github.com/moneta-labs/moneta/internal/registry"
)

// RoundingMode names the rounding used by monetary arithmetic.
type RoundingMode string

const (
	RoundUnnecessary RoundingMode = ""
	RoundHalfEven    RoundingMode = "half-even"
	RoundHalfUp      RoundingMode = "half-up"
	RoundHalfDown    RoundingMode = "half-down"
	RoundUp          RoundingMode = "up"
	RoundDown        RoundingMode = "down"
	RoundCeiling     RoundingMode = "ceiling"
	RoundFloor       RoundingMode = "floor"
)

// Binding is what a task sees as its current registry and arithmetic
// policy. A nil Registry means "use the default". Rounding and Rescale
// form one policy and are bound together: a binding replaces the policy
// of any enclosing binding as a whole.
type Binding struct {
	Registry *registry.Registry
	Rounding RoundingMode
	Rescale  bool
}

var slot atomic.Pointer[registry.Registry]

var empty = registry.Empty()

// SetDefault installs r as the process-wide default and returns the
// previous one (nil when none was set). A nil r clears the slot.
func SetDefault(r *registry.Registry) *registry.Registry {
	return slot.Swap(r)
}

// Default returns the process-wide registry, or an empty one when none has
// been installed.
func Default() *registry.Registry {
	if r := slot.Load(); r != nil {
		return r
	}
	return empty
}

type bindingKey struct{}

// With returns a context carrying b. A nil Registry is inherited from the
// binding already in ctx; the rounding mode and rescale policy are always
// taken from b.
func With(ctx context.Context, b Binding) context.Context {
	if b.Registry == nil {
		prev, _ := ctx.Value(bindingKey{}).(Binding)
		b.Registry = prev.Registry
	}
	return context.WithValue(ctx, bindingKey{}, b)
}

// WithRegistry binds r for a task and keeps the enclosing policy.
func WithRegistry(ctx context.Context, r *registry.Registry) context.Context {
	b, _ := ctx.Value(bindingKey{}).(Binding)
	b.Registry = r
	return context.WithValue(ctx, bindingKey{}, b)
}

// FromContext returns the binding in effect for ctx, with the default
// registry filled in when the context does not override it.
func FromContext(ctx context.Context) Binding {
	b, _ := ctx.Value(bindingKey{}).(Binding)
	if b.Registry == nil {
		b.Registry = Default()
	}
	return b
}

// Registry returns the registry in effect for ctx.
func Registry(ctx context.Context) *registry.Registry {
	return FromContext(ctx).Registry
}

// Do runs fn under b. The caller's context is left untouched, so the
// previous binding is back in effect once fn returns, errs or panics.
func Do(ctx context.Context, b Binding, fn func(context.Context) error) error {
	return fn(With(ctx, b))
}
