package service

import (
	"Revamp/config"
	"Revamp/dao"
	"Revamp/models"
	"Revamp/pkg/encrypt"
	"Revamp/pkg/jwt"
	"Revamp/types"
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, login, password string) (*models.User, error)
	IssueToken(user *models.User) (string, error)
	IssueGuestToken() (string, error)
	CurrentUser(ctx context.Context, claims *jwt.Claims) (*models.User, error)
	UpdateMe(ctx context.Context, user *models.User, req *types.UpdateMeRequest) (*models.User, error)
}

type AuthService struct {
	Config    *config.Config
	UsersRepo *dao.Users
}

// Register 邮箱和用户名都不能重复
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error) {
	exist, err := s.UsersRepo.IsRegistered(ctx, req.Email, req.Username)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrUserExists
	}

	hashed, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:               req.Email,
		Username:            req.Username,
		FullName:            req.FullName,
		HashedPassword:      hashed,
		IsActive:            true,
		NotificationEnabled: true,
		MaxParkingDuration:  480,
	}
	if err := s.UsersRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// Authenticate login 可以是邮箱或用户名
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	user, err := s.UsersRepo.FindByLogin(ctx, login)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrIncorrectLogin
		}
		return nil, err
	}
	if !encrypt.VerifyPassword(user.HashedPassword, password) {
		return nil, ErrIncorrectLogin
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	secret, err := s.Config.SecretKey()
	if err != nil {
		return "", err
	}
	return jwt.GenerateToken(secret, user.ID, user.Email, s.Config.Jwt.Expire())
}

func (s *AuthService) IssueGuestToken() (string, error) {
	secret, err := s.Config.SecretKey()
	if err != nil {
		return "", err
	}
	return jwt.GenerateGuestToken(secret, s.Config.Jwt.Expire())
}

// CurrentUser 游客返回 ErrGuest
func (s *AuthService) CurrentUser(ctx context.Context, claims *jwt.Claims) (*models.User, error) {
	if claims.Guest {
		return nil, ErrGuest
	}
	user, err := s.UsersRepo.FindByEmail(ctx, claims.Email())
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

func (s *AuthService) UpdateMe(ctx context.Context, user *models.User, req *types.UpdateMeRequest) (*models.User, error) {
	updates := make(map[string]any)
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Password != nil {
		hashed, err := encrypt.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updates["hashed_password"] = hashed
	}
	if req.PreferredZones != nil {
		b, err := json.Marshal(*req.PreferredZones)
		if err != nil {
			return nil, err
		}
		updates["preferred_zones"] = datatypes.JSON(b)
	}
	if req.NotificationEnabled != nil {
		updates["notification_enabled"] = *req.NotificationEnabled
	}
	if req.MaxParkingDuration != nil {
		updates["max_parking_duration"] = *req.MaxParkingDuration
	}
	updates["updated_at"] = time.Now()

	if err := s.UsersRepo.Update(ctx, user.ID, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserTaken
		}
		return nil, err
	}
	return s.UsersRepo.FindById(ctx, user.ID)
}

// PreferredZones JSON 列解析失败时返回空
func PreferredZones(user *models.User) []string {
	zones := make([]string, 0)
	if len(user.PreferredZones) == 0 {
		return zones
	}
	if err := json.Unmarshal(user.PreferredZones, &zones); err != nil || zones == nil {
		return make([]string, 0)
	}
	return zones
}
