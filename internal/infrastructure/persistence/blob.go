// Package persistence implements the tenant-partitioned record store: a
// namespaced key→JSON-blob backend plus a typed partition store per module.
package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/shared"
)

// Key addresses one partition: the records of one module owned by one tenant
type Key struct {
	Module shared.Module
	Tenant uuid.UUID
}

// String renders the namespaced backend key
func (k Key) String() string {
	return "crm:partition:" + k.Module.String() + ":" + k.Tenant.String()
}

// BlobStore is the persistence backend contract: get/set/delete of one
// JSON payload per partition key. Set replaces the payload atomically from
// the caller's perspective; readers never observe a torn payload.
type BlobStore interface {
	// Get returns the payload and whether the key exists
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	Set(ctx context.Context, key Key, payload []byte) error
	Delete(ctx context.Context, key Key) error
}
