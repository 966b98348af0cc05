package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess = "access"
	TypeGuest  = "guest"
)

var ErrInvalidType = errors.New("invalid token type")

// Claims sub 为用户邮箱，游客 token 的 Guest 为 true
type Claims struct {
	UserID uint   `json:"uid,omitempty"`
	Type   string `json:"type"`
	Guest  bool   `json:"guest,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Email() string {
	return c.Subject
}

// ShouldRotate 距离过期不足 buffer 时需要下发新 token
func ShouldRotate(claims *Claims, buffer time.Duration) bool {
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) <= buffer
}

func GenerateToken(secret []byte, userID uint, email string, expire time.Duration) (string, error) {
	return sign(secret, Claims{UserID: userID, Type: TypeAccess}, email, expire)
}

// GenerateGuestToken 游客只能访问公开接口
func GenerateGuestToken(secret []byte, expire time.Duration) (string, error) {
	return sign(secret, Claims{Type: TypeGuest, Guest: true}, "guest@revamp.local", expire)
}

func sign(secret []byte, claims Claims, subject string, expire time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseToken(secret []byte, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Type != TypeAccess && claims.Type != TypeGuest {
		return nil, ErrInvalidType
	}
	return claims, nil
}
