// Package aggregate builds the cross-tenant read view for privileged
// viewers and routes write-backs to the owning tenant's partition.
package aggregate

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/tenant"
	"github.com/crm/backend/internal/infrastructure/persistence"
)

// Aggregated decorates a record with its owner's display tag at read time.
// The tag lives only on this wrapper; the persisted record never carries
// it, so nothing needs stripping on the write path.
type Aggregated[R shared.Record] struct {
	Record    R      `json:"record"`
	TenantTag string `json:"tenant_tag"`
}

// Gateway is the read/write boundary for one module and one viewer.
// It holds no global state; registry and viewer are supplied at
// construction and fixed for the gateway's lifetime.
type Gateway[R shared.ManagedRecord] struct {
	store    *persistence.PartitionStore[R]
	registry tenant.Registry
	viewer   tenant.Viewer
	logger   *zap.Logger
}

// NewGateway creates a gateway over one module's partition store
func NewGateway[R shared.ManagedRecord](store *persistence.PartitionStore[R], registry tenant.Registry, viewer tenant.Viewer, logger *zap.Logger) *Gateway[R] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway[R]{
		store:    store,
		registry: registry,
		viewer:   viewer,
		logger:   logger,
	}
}

// ReadAll returns the viewer's visible records, each tagged with its
// owner's display name. A privileged viewer sees the union of every
// active tenant's partition, head entity first then franchises in
// registration order; a scoped viewer sees only its own partition.
// The read path never writes to any partition.
func (g *Gateway[R]) ReadAll(ctx context.Context) ([]Aggregated[R], error) {
	if !g.viewer.Privileged() {
		owner, ok := g.registry.Lookup(g.viewer.TenantID)
		if !ok {
			return nil, shared.ErrUnknownTenant
		}
		records, err := g.store.Load(ctx, owner.ID)
		if err != nil {
			return nil, err
		}
		return tag(records, owner.Name), nil
	}

	var out []Aggregated[R]
	for _, t := range g.registry.All() {
		if !t.Active {
			continue
		}
		records, err := g.store.Load(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s for tenant %s: %w", g.store.Module(), t.Name, err)
		}
		out = append(out, tag(records, t.Name)...)
	}
	if out == nil {
		out = []Aggregated[R]{}
	}
	return out, nil
}

// WriteBack persists a record into its owner's partition. The owner is
// taken from the record itself; an owner not present in the registry
// fails with ErrUnknownTenant, and a scoped viewer may only write into
// its own partition.
func (g *Gateway[R]) WriteBack(ctx context.Context, record R) error {
	if _, ok := g.registry.Lookup(record.Owner()); !ok {
		return shared.ErrUnknownTenant
	}
	if !g.viewer.Privileged() && record.Owner() != g.viewer.TenantID {
		return shared.ErrForbidden
	}
	return g.store.Upsert(ctx, record)
}

// WriteBackAggregated unwraps the read-time decoration and persists the
// bare record.
func (g *Gateway[R]) WriteBackAggregated(ctx context.Context, a Aggregated[R]) error {
	return g.WriteBack(ctx, a.Record)
}

// Remove permanently deletes a record from the given tenant's partition,
// under the same write isolation rules as WriteBack.
func (g *Gateway[R]) Remove(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, ok := g.registry.Lookup(ownerID); !ok {
		return shared.ErrUnknownTenant
	}
	if !g.viewer.Privileged() && ownerID != g.viewer.TenantID {
		return shared.ErrForbidden
	}
	return g.store.Remove(ctx, ownerID, id)
}

// Find locates a record by id, returning it with its owner's tag. Unlike
// ReadAll it consults every registered tenant, inactive ones included, so
// a dormant tenant's records stay reachable for dispositions and deletes
// even while they are hidden from the aggregated view.
func (g *Gateway[R]) Find(ctx context.Context, id uuid.UUID) (Aggregated[R], error) {
	var zero Aggregated[R]
	if !g.viewer.Privileged() {
		owner, ok := g.registry.Lookup(g.viewer.TenantID)
		if !ok {
			return zero, shared.ErrUnknownTenant
		}
		records, err := g.store.Load(ctx, owner.ID)
		if err != nil {
			return zero, err
		}
		for _, r := range records {
			if r.RecordID() == id {
				return Aggregated[R]{Record: r, TenantTag: owner.Name}, nil
			}
		}
		return zero, shared.ErrNotFound
	}

	for _, t := range g.registry.All() {
		records, err := g.store.Load(ctx, t.ID)
		if err != nil {
			return zero, fmt.Errorf("aggregate %s for tenant %s: %w", g.store.Module(), t.Name, err)
		}
		for _, r := range records {
			if r.RecordID() == id {
				return Aggregated[R]{Record: r, TenantTag: t.Name}, nil
			}
		}
	}
	return zero, shared.ErrNotFound
}

func tag[R shared.Record](records []R, name string) []Aggregated[R] {
	out := make([]Aggregated[R], 0, len(records))
	for _, r := range records {
		out = append(out, Aggregated[R]{Record: r, TenantTag: name})
	}
	return out
}
