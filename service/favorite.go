package service

import (
	"Revamp/dao"
	"Revamp/models"
	"Revamp/types"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var _ IFavoriteService = (*FavoriteService)(nil)

type IFavoriteService interface {
	List(ctx context.Context, userID uint) ([]*models.FavoriteZone, error)
	Add(ctx context.Context, userID uint, req *types.FavoriteCreateRequest) (*models.FavoriteZone, error)
	Update(ctx context.Context, userID uint, id uint64, req *types.FavoriteUpdateRequest) (*models.FavoriteZone, error)
	Remove(ctx context.Context, userID uint, id uint64) error
	Reorder(ctx context.Context, userID uint, items []dao.OrderItem) error
	RecordUsage(ctx context.Context, userID uint, id uint64) (int, error)
}

type FavoriteService struct {
	FavoriteDAO *dao.FavoriteZoneDAO
}

func (s *FavoriteService) List(ctx context.Context, userID uint) ([]*models.FavoriteZone, error) {
	return s.FavoriteDAO.ListByUser(ctx, userID)
}

// Add 同一用户同一区域只能收藏一次，新收藏排在最后
func (s *FavoriteService) Add(ctx context.Context, userID uint, req *types.FavoriteCreateRequest) (*models.FavoriteZone, error) {
	exist, err := s.FavoriteDAO.IsFavorite(ctx, userID, req.ZoneCode)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrFavoriteExists
	}

	count, err := s.FavoriteDAO.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fav := &models.FavoriteZone{
		UserID:          userID,
		ZoneCode:        req.ZoneCode,
		ZoneDescription: req.ZoneDescription,
		Notes:           req.Notes,
		DisplayOrder:    int(count),
	}
	if err := s.FavoriteDAO.Create(ctx, fav); err != nil {
		// 并发添加时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFavoriteExists
		}
		return nil, err
	}
	return fav, nil
}

func (s *FavoriteService) Update(ctx context.Context, userID uint, id uint64, req *types.FavoriteUpdateRequest) (*models.FavoriteZone, error) {
	fav, err := s.FavoriteDAO.GetByUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if fav == nil {
		return nil, ErrFavoriteNotFound
	}

	updates := make(map[string]any)
	if req.ZoneDescription != nil {
		updates["zone_description"] = *req.ZoneDescription
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if len(updates) == 0 {
		return fav, nil
	}

	if _, err := s.FavoriteDAO.UpdateByWhere(ctx, updates, "id = ? AND user_id = ?", id, userID); err != nil {
		return nil, err
	}
	return s.FavoriteDAO.GetByUser(ctx, id, userID)
}

func (s *FavoriteService) Remove(ctx context.Context, userID uint, id uint64) error {
	err := s.FavoriteDAO.DeleteByUser(ctx, id, userID)
	if dao.IsNotFound(err) {
		return ErrFavoriteNotFound
	}
	return err
}

// Reorder 返回 *dao.MissingFavoriteError 时没有任何修改
func (s *FavoriteService) Reorder(ctx context.Context, userID uint, items []dao.OrderItem) error {
	return s.FavoriteDAO.Reorder(ctx, userID, items)
}

func (s *FavoriteService) RecordUsage(ctx context.Context, userID uint, id uint64) (int, error) {
	n, err := s.FavoriteDAO.IncrUsage(ctx, id, userID, time.Now().UTC())
	if dao.IsNotFound(err) {
		return 0, ErrFavoriteNotFound
	}
	return n, err
}
