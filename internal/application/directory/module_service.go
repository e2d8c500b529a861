// Package directory holds the application services for the business
// modules: vendors, leads, staff, dialer contacts and enquiries.
package directory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/application/aggregate"
	"github.com/crm/backend/internal/domain/lifecycle"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/tenant"
	"github.com/crm/backend/internal/infrastructure/persistence"
)

// ModuleService bundles the operations every module shares: aggregated
// listing, dispositions and deletes. Concrete services embed it and add
// their creation paths.
type ModuleService[R shared.ManagedRecord] struct {
	store    *persistence.PartitionStore[R]
	registry tenant.Registry
	life     *lifecycle.Lifecycle
	logger   *zap.Logger
}

// NewModuleService creates the shared service core for one module
func NewModuleService[R shared.ManagedRecord](store *persistence.PartitionStore[R], registry tenant.Registry, life *lifecycle.Lifecycle, logger *zap.Logger) *ModuleService[R] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModuleService[R]{
		store:    store,
		registry: registry,
		life:     life,
		logger:   logger.With(zap.String("module", store.Module().String())),
	}
}

// Gateway builds the viewer-bound aggregation gateway for this module
func (s *ModuleService[R]) Gateway(viewer tenant.Viewer) *aggregate.Gateway[R] {
	return aggregate.NewGateway(s.store, s.registry, viewer, s.logger)
}

// Lifecycle returns this module's lifecycle
func (s *ModuleService[R]) Lifecycle() *lifecycle.Lifecycle {
	return s.life
}

// Store returns the module's partition store
func (s *ModuleService[R]) Store() *persistence.PartitionStore[R] {
	return s.store
}

// List returns the viewer's visible records with tenant tags
func (s *ModuleService[R]) List(ctx context.Context, viewer tenant.Viewer) ([]aggregate.Aggregated[R], error) {
	return s.Gateway(viewer).ReadAll(ctx)
}

// Disposition applies a status transition to one visible record and
// persists it back into its owner's partition.
func (s *ModuleService[R]) Disposition(ctx context.Context, viewer tenant.Viewer, id uuid.UUID, newStatus shared.Status, note string, followUp *time.Time) (R, error) {
	var zero R
	gw := s.Gateway(viewer)
	found, err := gw.Find(ctx, id)
	if err != nil {
		return zero, err
	}
	record := found.Record
	if err := s.life.Transition(record, newStatus, note, followUp); err != nil {
		return zero, err
	}
	if err := gw.WriteBackAggregated(ctx, found); err != nil {
		return zero, err
	}
	return record, nil
}

// Delete permanently removes one visible record
func (s *ModuleService[R]) Delete(ctx context.Context, viewer tenant.Viewer, id uuid.UUID) error {
	gw := s.Gateway(viewer)
	found, err := gw.Find(ctx, id)
	if err != nil {
		return err
	}
	return gw.Remove(ctx, found.Record.Owner(), id)
}

// resolveOwner decides which partition a creation lands in: scoped viewers
// always write into their own, privileged viewers may name any known tenant.
func resolveOwner(registry tenant.Registry, viewer tenant.Viewer, requested uuid.UUID) (uuid.UUID, error) {
	owner := viewer.TenantID
	if viewer.Privileged() && requested != uuid.Nil {
		owner = requested
	}
	if _, ok := registry.Lookup(owner); !ok {
		return uuid.Nil, shared.ErrUnknownTenant
	}
	return owner, nil
}
