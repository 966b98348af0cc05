package dao

import (
	"Revamp/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// MissingFavoriteError 重排时某个 id 不属于该用户
type MissingFavoriteError struct {
	ID uint64
}

func (e *MissingFavoriteError) Error() string {
	return fmt.Sprintf("favorite %d not found", e.ID)
}

// OrderItem 重排的一项
type OrderItem struct {
	ID           uint64
	DisplayOrder int
}

type FavoriteZoneDAO struct {
	Repo[models.FavoriteZone]
}

func NewFavoriteZoneDAO(db *gorm.DB) *FavoriteZoneDAO {
	return &FavoriteZoneDAO{Repo: NewRepo[models.FavoriteZone](db)}
}

// ListByUser 按 display_order 升序，id 作为次序
func (d *FavoriteZoneDAO) ListByUser(ctx context.Context, userID uint) ([]*models.FavoriteZone, error) {
	return d.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID).Order("display_order ASC").Order("id ASC")
	})
}

// GetByUser 查询用户自己的收藏，不存在返回 nil, nil
func (d *FavoriteZoneDAO) GetByUser(ctx context.Context, id uint64, userID uint) (*models.FavoriteZone, error) {
	var item models.FavoriteZone
	err := d.Db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Limit(1).Find(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (d *FavoriteZoneDAO) IsFavorite(ctx context.Context, userID uint, zoneCode string) (bool, error) {
	return d.IsExist(ctx, "user_id = ? AND zone_code = ?", userID, zoneCode)
}

func (d *FavoriteZoneDAO) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return d.Count(ctx, "user_id = ?", userID)
}

// Reorder 事务内批量更新 display_order，任一 id 不属于用户时整体回滚
func (d *FavoriteZoneDAO) Reorder(ctx context.Context, userID uint, items []OrderItem) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uint64, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}

		var owned []uint64
		if err := tx.Model(&models.FavoriteZone{}).
			Where("user_id = ? AND id IN ?", userID, ids).
			Pluck("id", &owned).Error; err != nil {
			return err
		}
		set := make(map[uint64]struct{}, len(owned))
		for _, id := range owned {
			set[id] = struct{}{}
		}

		for _, it := range items {
			if _, ok := set[it.ID]; !ok {
				return &MissingFavoriteError{ID: it.ID}
			}
			if err := tx.Model(&models.FavoriteZone{}).
				Where("id = ? AND user_id = ?", it.ID, userID).
				Update("display_order", it.DisplayOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// IncrUsage times_used 加一并记录时间，返回新的次数
func (d *FavoriteZoneDAO) IncrUsage(ctx context.Context, id uint64, userID uint, at time.Time) (int, error) {
	var times int
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.FavoriteZone{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]any{
				"times_used": gorm.Expr("times_used + ?", 1),
				"last_used":  at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.FavoriteZone{}).Where("id = ?", id).Pluck("times_used", &times).Error
	})
	if err != nil {
		return 0, err
	}
	return times, nil
}

// DeleteByUser 返回 gorm.ErrRecordNotFound 表示不存在
func (d *FavoriteZoneDAO) DeleteByUser(ctx context.Context, id uint64, userID uint) error {
	n, err := d.Delete(ctx, "id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsMissing 重排失败是否因为 id 不存在
func IsMissing(err error) (uint64, bool) {
	var me *MissingFavoriteError
	if errors.As(err, &me) {
		return me.ID, true
	}
	return 0, false
}
