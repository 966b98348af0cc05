package models

import (
	"time"

	"gorm.io/datatypes"
)

// ZoneSnapshot 上游区域数据的最近一次成功结果，按 bounds_key 覆盖写
type ZoneSnapshot struct {
	BoundsKey string         `gorm:"column:bounds_key;primaryKey;size:128"`
	Data      datatypes.JSON `gorm:"column:data;not null"`
	FetchedAt time.Time      `gorm:"column:fetched_at;not null"`
}

func (ZoneSnapshot) TableName() string { return "zone_snapshots" }
