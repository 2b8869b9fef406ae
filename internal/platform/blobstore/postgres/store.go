package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/platform/blobstore"
)

var _ blobstore.Backend = (*Store)(nil)

// Store persists snapshot payloads in PostgreSQL. Caller owns DB lifecycle.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore wires a PostgreSQL-backed snapshot store. Schema comes from migrations.Run.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *Store) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// SnapshotRecord maps one snapshot to the storefront_snapshots table.
type SnapshotRecord struct {
	Key       string    `gorm:"primaryKey;column:snapshot_key;size:256"`
	Payload   []byte    `gorm:"column:payload;type:bytea"`
	Revision  int64     `gorm:"column:revision;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (SnapshotRecord) TableName() string { return "storefront_snapshots" }

// Get loads the payload stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rec SnapshotRecord
	if err := s.db.WithContext(ctx).First(&rec, "snapshot_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	return rec.Payload, nil
}

// Put upserts the payload under key unless the stored row carries a higher revision.
func (s *Store) Put(ctx context.Context, key string, revision int64, payload []byte) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if err := blobstore.ValidateKey(key); err != nil {
		return err
	}
	now := s.now()
	rec := SnapshotRecord{Key: key, Payload: payload, Revision: revision, CreatedAt: now, UpdatedAt: now}
	notNewer := clause.Where{Exprs: []clause.Expression{
		clause.Expr{SQL: "storefront_snapshots.revision <= excluded.revision"},
	}}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "snapshot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "revision", "updated_at"}),
			Where:     notNewer,
		}).
		Create(&rec).Error
}

// Delete removes the payload under key; missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&SnapshotRecord{}, "snapshot_key = ?", key).Error
}

// PurgeStale removes snapshots not written since cutoff and reports how many were deleted.
func (s *Store) PurgeStale(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("updated_at <= ?", cutoff).Delete(&SnapshotRecord{})
	return result.RowsAffected, result.Error
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres snapshot store not configured")
	}
	return nil
}
