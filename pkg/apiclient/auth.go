package apiclient

import (
	"context"
	"net/http"
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User GET /auth/me 返回的用户信息
type User struct {
	ID                  int64     `json:"id"`
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

func (c *Client) Login(ctx context.Context, email, password string) (Token, error) {
	var tok Token
	err := c.do(ctx, http.MethodPost, "/auth/login", "", LoginRequest{Email: email, Password: password}, &tok)
	return tok, err
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (User, error) {
	var u User
	err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &u)
	return u, err
}

func (c *Client) Me(ctx context.Context, token string) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &u)
	return u, err
}
