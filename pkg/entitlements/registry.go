package entitlements

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/candlepilots/planguard/pkg/plan"
)

// CounterFunc returns the current usage of one resource kind for a business.
// Should be fast: a count query or a cached aggregate at the store level.
// Must never return a negative count; an empty collection counts as zero.
type CounterFunc func(ctx context.Context, businessID uuid.UUID) (int64, error)

// CounterRegistry maps a resource kind to its CounterFunc.
// Not thread-safe: register all counters at startup only.
type CounterRegistry map[plan.Resource]CounterFunc

// NewRegistry returns a new, empty CounterRegistry.
func NewRegistry() CounterRegistry {
	return make(CounterRegistry)
}

// Register sets or replaces the CounterFunc for the given resource.
// Panics if fn is nil.
func (r CounterRegistry) Register(res plan.Resource, fn CounterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("entitlements: CounterFunc for resource %q cannot be nil", res))
	}
	r[res] = fn
}
