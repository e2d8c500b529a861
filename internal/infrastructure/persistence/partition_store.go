package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/notify"
)

// PartitionStore persists one module's records, partitioned by owning
// tenant. A record lives in exactly one partition; Save rejects records
// owned by a different tenant.
//
// Writes are last-write-wins: Save replaces a tenant's whole partition,
// and Upsert/Remove are read-modify-save with no locking. Callers racing
// from separate views should re-read immediately before modifying.
type PartitionStore[R shared.ManagedRecord] struct {
	module   shared.Module
	blobs    BlobStore
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewPartitionStore creates the store for one module
func NewPartitionStore[R shared.ManagedRecord](module shared.Module, blobs BlobStore, notifier notify.Notifier, logger *zap.Logger) *PartitionStore[R] {
	if notifier == nil {
		notifier = notify.Noop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartitionStore[R]{
		module:   module,
		blobs:    blobs,
		notifier: notifier,
		logger:   logger.With(zap.String("module", module.String())),
	}
}

// Module returns the module this store persists
func (s *PartitionStore[R]) Module() shared.Module {
	return s.module
}

// Load returns the tenant's records. A partition with no prior data is an
// empty collection, not an error. A malformed payload fails with
// ErrCorruptedPartition; callers decide whether to fail or degrade.
func (s *PartitionStore[R]) Load(ctx context.Context, tenantID uuid.UUID) ([]R, error) {
	payload, ok, err := s.blobs.Get(ctx, s.key(tenantID))
	if err != nil {
		return nil, fmt.Errorf("load partition: %w", err)
	}
	if !ok || len(payload) == 0 {
		return []R{}, nil
	}
	var records []R
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCorruptedPartition, err)
	}
	return records, nil
}

// LoadOrEmpty is the explicit degraded read: a corrupted partition is
// logged and coerced to empty instead of failing. Backend errors still
// coerce to empty but are logged at error level; in-memory state is never
// affected.
func (s *PartitionStore[R]) LoadOrEmpty(ctx context.Context, tenantID uuid.UUID) []R {
	records, err := s.Load(ctx, tenantID)
	if err != nil {
		s.logger.Warn("degraded partition read, treating as empty",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
		return []R{}
	}
	return records
}

// Save replaces the tenant's partition with the given records and signals
// the change. Every record must be owned by tenantID.
func (s *PartitionStore[R]) Save(ctx context.Context, tenantID uuid.UUID, records []R) error {
	for _, r := range records {
		if r.Owner() != tenantID {
			return fmt.Errorf("%w: record %s owned by %s, saving into %s",
				shared.ErrOwnerMismatch, r.RecordID(), r.Owner(), tenantID)
		}
	}
	if records == nil {
		records = []R{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode partition: %w", err)
	}
	if err := s.blobs.Set(ctx, s.key(tenantID), payload); err != nil {
		return fmt.Errorf("save partition: %w", err)
	}
	s.notifier.Publish(ctx, s.module, tenantID)
	return nil
}

// Upsert inserts or replaces one record in its owner's partition
func (s *PartitionStore[R]) Upsert(ctx context.Context, record R) error {
	tenantID := record.Owner()
	records, err := s.Load(ctx, tenantID)
	if err != nil {
		return err
	}
	replaced := false
	for i, existing := range records {
		if existing.RecordID() == record.RecordID() {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}
	return s.Save(ctx, tenantID, records)
}

// Remove permanently deletes one record from the tenant's partition
func (s *PartitionStore[R]) Remove(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) error {
	records, err := s.Load(ctx, tenantID)
	if err != nil {
		return err
	}
	kept := records[:0]
	found := false
	for _, r := range records {
		if r.RecordID() == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return shared.ErrNotFound
	}
	return s.Save(ctx, tenantID, kept)
}

func (s *PartitionStore[R]) key(tenantID uuid.UUID) Key {
	return Key{Module: s.module, Tenant: tenantID}
}
