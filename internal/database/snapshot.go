package database

import (
	"context"
	"errors"
	"time"

	"gamepulse/dashboard/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const batchSize = 500

// SnapshotStore keeps the latest normalized dataset in a database.
// A save replaces the previous snapshot atomically.
type SnapshotStore struct {
	db *gorm.DB
}

// NewSnapshotStore wraps a migrated connection.
func NewSnapshotStore(db *gorm.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// columnsMeta stores the source's column set next to the snapshot rows.
type columnsMeta struct {
	ID      uint `gorm:"primaryKey"`
	Columns datatypes.JSONSlice[string]
}

func (columnsMeta) TableName() string { return "snapshot_columns" }

// SaveSnapshot replaces the stored records with the given ones.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, source string, records []models.GameRecord, cols []string) error {
	rows := make([]models.GameSnapshot, len(records))
	for i, r := range records {
		rows[i] = models.NewGameSnapshot(r)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Hard delete: soft-deleted snapshot rows would only grow the table.
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.GameSnapshot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&columnsMeta{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&columnsMeta{ID: 1, Columns: cols}).Error; err != nil {
			return err
		}
		return tx.Create(&models.SnapshotMeta{Source: source, Rows: len(records), CreatedAt: time.Now()}).Error
	})
}

// LoadSnapshot returns the stored records in insertion order. An empty store yields no records and no error.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) ([]models.GameRecord, []string, string, error) {
	db := s.db.WithContext(ctx)

	var meta models.SnapshotMeta
	if err := db.Order("id desc").First(&meta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, "", nil
		}
		return nil, nil, "", err
	}

	var rows []models.GameSnapshot
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, nil, "", err
	}

	var cols columnsMeta
	if err := db.First(&cols, 1).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, "", err
	}

	records := make([]models.GameRecord, len(rows))
	for i, r := range rows {
		records[i] = r.Record()
	}
	return records, []string(cols.Columns), meta.Source, nil
}

// History lists previous snapshot saves, newest first.
func (s *SnapshotStore) History(ctx context.Context, limit int) ([]models.SnapshotMeta, error) {
	var metas []models.SnapshotMeta
	err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&metas).Error
	return metas, err
}
