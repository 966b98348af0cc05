package models

import (
	"time"

	"gorm.io/datatypes"
)

// User 用户，对应 users
// email、username 唯一
type User struct {
	ID                  uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email               string         `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	Username            string         `gorm:"column:username;size:255;not null;uniqueIndex" json:"username"`
	HashedPassword      string         `gorm:"column:hashed_password;size:255;not null" json:"-"`
	FullName            *string        `gorm:"column:full_name;size:255" json:"full_name"`
	IsActive            bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsSuperuser         bool           `gorm:"column:is_superuser;not null;default:false" json:"is_superuser"`
	PreferredZones      datatypes.JSON `gorm:"column:preferred_zones" json:"preferred_zones"`
	NotificationEnabled bool           `gorm:"column:notification_enabled;not null;default:true" json:"notification_enabled"`
	MaxParkingDuration  int            `gorm:"column:max_parking_duration;not null;default:480" json:"max_parking_duration"`
	CreatedAt           time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
