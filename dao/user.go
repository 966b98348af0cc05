package dao

import (
	"Revamp/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

// FindByEmail 邮箱查询
func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "email = ?", email)
}

// FindByLogin 邮箱或用户名
func (u *Users) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "email = ? OR username = ?", login, login)
}

// IsRegistered 邮箱或用户名任一已存在
func (u *Users) IsRegistered(ctx context.Context, email, username string) (bool, error) {
	return u.Repo.IsExist(ctx, "email = ? OR username = ?", email, username)
}

func (u *Users) Update(ctx context.Context, userID uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	err := u.Db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(updates).Error

	if err != nil {
		return fmt.Errorf("dao.Users.Update error: %w", err)
	}

	return nil
}
