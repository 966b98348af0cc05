package types

import "time"

// FavoriteZone 收藏返回体，id 为 hashid 字符串
type FavoriteZone struct {
	ID              string     `json:"id"`
	UserID          uint       `json:"user_id"`
	ZoneCode        string     `json:"zone_code"`
	ZoneDescription *string    `json:"zone_description"`
	Notes           *string    `json:"notes"`
	DisplayOrder    int        `json:"display_order"`
	TimesUsed       int        `json:"times_used"`
	LastUsed        *time.Time `json:"last_used"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type FavoriteCreateRequest struct {
	ZoneCode        string  `json:"zone_code" binding:"required"`
	ZoneDescription *string `json:"zone_description"`
	Notes           *string `json:"notes"`
}

// FavoriteUpdateRequest 只更新传了的字段
type FavoriteUpdateRequest struct {
	ZoneDescription *string `json:"zone_description"`
	Notes           *string `json:"notes"`
	DisplayOrder    *int    `json:"display_order"`
}

type FavoriteOrderItem struct {
	ID           string `json:"id" binding:"required"`
	DisplayOrder int    `json:"display_order"`
}

type FavoriteReorderRequest struct {
	Order []FavoriteOrderItem `json:"order" binding:"required,dive"`
}

type FavoriteUsageResponse struct {
	Message   string `json:"message"`
	TimesUsed int    `json:"times_used"`
}
