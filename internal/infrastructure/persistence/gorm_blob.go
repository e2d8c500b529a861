package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PartitionBlob is the single table backing the SQL blob store: one row
// per (module, tenant) pair holding that partition's JSON payload.
type PartitionBlob struct {
	Module    string    `gorm:"primaryKey;type:varchar(32)"`
	TenantID  uuid.UUID `gorm:"primaryKey;type:uuid"`
	Payload   []byte    `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (PartitionBlob) TableName() string {
	return "partition_blobs"
}

// GormBlobStore is a BlobStore over a relational database (sqlite or
// postgres) via GORM.
type GormBlobStore struct {
	db *gorm.DB
}

// NewGormBlobStore creates the store and migrates its table
func NewGormBlobStore(db *gorm.DB) (*GormBlobStore, error) {
	if err := db.AutoMigrate(&PartitionBlob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate partition_blobs: %w", err)
	}
	return &GormBlobStore{db: db}, nil
}

// Get returns the payload row for the partition key
func (s *GormBlobStore) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	var row PartitionBlob
	err := s.db.WithContext(ctx).
		Where("module = ? AND tenant_id = ?", key.Module.String(), key.Tenant).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read partition %s: %w", key, err)
	}
	return row.Payload, true, nil
}

// Set upserts the payload row for the partition key
func (s *GormBlobStore) Set(ctx context.Context, key Key, payload []byte) error {
	row := PartitionBlob{
		Module:   key.Module.String(),
		TenantID: key.Tenant,
		Payload:  payload,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "module"}, {Name: "tenant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write partition %s: %w", key, err)
	}
	return nil
}

// Delete removes the payload row; a missing row is a no-op
func (s *GormBlobStore) Delete(ctx context.Context, key Key) error {
	err := s.db.WithContext(ctx).
		Where("module = ? AND tenant_id = ?", key.Module.String(), key.Tenant).
		Delete(&PartitionBlob{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete partition %s: %w", key, err)
	}
	return nil
}

var _ BlobStore = (*GormBlobStore)(nil)
