package service

import (
	"Revamp/dao"
	"Revamp/types"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavoriteService(t *testing.T) *FavoriteService {
	return &FavoriteService{FavoriteDAO: dao.NewFavoriteZoneDAO(newTestDB(t))}
}

func TestFavoriteService_AddAppendsAndRejectsDuplicate(t *testing.T) {
	s := newFavoriteService(t)
	ctx := context.Background()

	a, err := s.Add(ctx, 1, &types.FavoriteCreateRequest{ZoneCode: "A", ZoneDescription: strPtr("Lot A")})
	require.NoError(t, err)
	assert.Equal(t, 0, a.DisplayOrder)
	b, err := s.Add(ctx, 1, &types.FavoriteCreateRequest{ZoneCode: "B"})
	require.NoError(t, err)
	assert.Equal(t, 1, b.DisplayOrder)

	_, err = s.Add(ctx, 1, &types.FavoriteCreateRequest{ZoneCode: "A"})
	assert.ErrorIs(t, err, ErrFavoriteExists)

	// 其他用户可以收藏同一区域
	other, err := s.Add(ctx, 2, &types.FavoriteCreateRequest{ZoneCode: "A"})
	require.NoError(t, err)
	assert.Equal(t, 0, other.DisplayOrder)
}

func TestFavoriteService_Update(t *testing.T) {
	s := newFavoriteService(t)
	ctx := context.Background()
	a, err := s.Add(ctx, 1, &types.FavoriteCreateRequest{ZoneCode: "A"})
	require.NoError(t, err)

	order := 5
	got, err := s.Update(ctx, 1, a.ID, &types.FavoriteUpdateRequest{Notes: strPtr("near the gym"), DisplayOrder: &order})
	require.NoError(t, err)
	assert.Equal(t, "near the gym", *got.Notes)
	assert.Equal(t, 5, got.DisplayOrder)

	_, err = s.Update(ctx, 2, a.ID, &types.FavoriteUpdateRequest{Notes: strPtr("x")})
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestFavoriteService_RemoveAndUsage(t *testing.T) {
	s := newFavoriteService(t)
	ctx := context.Background()
	a, err := s.Add(ctx, 1, &types.FavoriteCreateRequest{ZoneCode: "A"})
	require.NoError(t, err)

	n, err := s.RecordUsage(ctx, 1, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, s.Remove(ctx, 2, a.ID), ErrFavoriteNotFound)
	require.NoError(t, s.Remove(ctx, 1, a.ID))
	assert.ErrorIs(t, s.Remove(ctx, 1, a.ID), ErrFavoriteNotFound)

	_, err = s.RecordUsage(ctx, 1, a.ID)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestFavoriteService_ReorderMissing(t *testing.T) {
	s := newFavoriteService(t)
	ctx := context.Background()
	a, err := s.Add(ctx, 1, &types.FavoriteCreateRequest{ZoneCode: "A"})
	require.NoError(t, err)

	err = s.Reorder(ctx, 1, []dao.OrderItem{{ID: a.ID, DisplayOrder: 0}, {ID: 999, DisplayOrder: 1}})
	id, ok := dao.IsMissing(err)
	require.True(t, ok)
	assert.Equal(t, uint64(999), id)

	list, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
