package types

import "time"

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required,min=6"`
	FullName *string `json:"full_name"`
}

// LoginRequest email 也可以填用户名
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenForm OAuth2 password 表单
type TokenForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID                  uint      `json:"id"`
	Email               string    `json:"email"`
	Username            string    `json:"username"`
	FullName            *string   `json:"full_name"`
	IsActive            bool      `json:"is_active"`
	PreferredZones      []string  `json:"preferred_zones"`
	NotificationEnabled bool      `json:"notification_enabled"`
	MaxParkingDuration  int       `json:"max_parking_duration"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// UpdateMeRequest 只更新传了的字段
type UpdateMeRequest struct {
	Email               *string   `json:"email" binding:"omitempty,email"`
	Username            *string   `json:"username"`
	FullName            *string   `json:"full_name"`
	Password            *string   `json:"password" binding:"omitempty,min=6"`
	PreferredZones      *[]string `json:"preferred_zones"`
	NotificationEnabled *bool     `json:"notification_enabled"`
	MaxParkingDuration  *int      `json:"max_parking_duration"`
}
