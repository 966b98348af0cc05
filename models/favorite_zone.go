package models

import "time"

// FavoriteZone 用户收藏的停车区域，对应 favorite_zones
// 唯一键: user_id + zone_code
type FavoriteZone struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID          uint       `gorm:"column:user_id;not null;uniqueIndex:uk_user_zone,priority:1"`
	ZoneCode        string     `gorm:"column:zone_code;size:64;not null;uniqueIndex:uk_user_zone,priority:2"`
	ZoneDescription *string    `gorm:"column:zone_description;size:255"`
	Notes           *string    `gorm:"column:notes;type:text"`
	DisplayOrder    int        `gorm:"column:display_order;not null;default:0"`
	TimesUsed       int        `gorm:"column:times_used;not null;default:0"`
	LastUsed        *time.Time `gorm:"column:last_used"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (FavoriteZone) TableName() string { return "favorite_zones" }
