package dao

import (
	"Revamp/models"
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ZoneSnapshotDAO struct {
	Repo[models.ZoneSnapshot]
}

func NewZoneSnapshotDAO(db *gorm.DB) *ZoneSnapshotDAO {
	return &ZoneSnapshotDAO{Repo: NewRepo[models.ZoneSnapshot](db)}
}

// Upsert 同一个 bounds_key 只保留最新一份
func (d *ZoneSnapshotDAO) Upsert(ctx context.Context, boundsKey string, data []byte, fetchedAt time.Time) error {
	snap := models.ZoneSnapshot{
		BoundsKey: boundsKey,
		Data:      datatypes.JSON(data),
		FetchedAt: fetchedAt,
	}
	return d.Db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bounds_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "fetched_at"}),
	}).Create(&snap).Error
}

// Get 不存在返回 nil, nil
func (d *ZoneSnapshotDAO) Get(ctx context.Context, boundsKey string) (*models.ZoneSnapshot, error) {
	var snap models.ZoneSnapshot
	err := d.Db.WithContext(ctx).Where("bounds_key = ?", boundsKey).Limit(1).Find(&snap).Error
	if err != nil {
		return nil, err
	}
	if snap.BoundsKey == "" {
		return nil, nil
	}
	return &snap, nil
}
