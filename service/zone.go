package service

import (
	"Revamp/config"
	"Revamp/dao"
	"Revamp/dao/cache"
	"Revamp/pkg/log"
	"Revamp/pkg/upstream"
	"Revamp/types"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	staleUpstreamBlocked = "upstream_blocked"
	staleUpstreamError   = "upstream_error"
)

var _ IZoneService = (*ZoneService)(nil)

// ZoneFetcher 上游区域数据源
type ZoneFetcher interface {
	FetchZones(ctx context.Context, b upstream.Bounds) (*upstream.Result, error)
}

type IZoneService interface {
	ParkingData(ctx context.Context, b *upstream.Bounds) (*types.ParkingDataResponse, error)
	Descriptions(ctx context.Context) ([]string, error)
	Coordinates(ctx context.Context, code string) (*types.ZoneCoordinatesResponse, error)
	RawZones(ctx context.Context) (*types.RawZonesResponse, error)
	DescriptionToZones(ctx context.Context) (map[string]string, error)
	Refresh(ctx context.Context, b upstream.Bounds) error
}

type ZoneService struct {
	Config      *config.Config
	Upstream    ZoneFetcher
	Cache       *cache.ZoneStorage
	SnapshotDAO *dao.ZoneSnapshotDAO
}

type zoneData struct {
	zones []upstream.Zone
	meta  types.StaleMetadata
}

// DefaultBounds 校园默认范围
func (s *ZoneService) DefaultBounds() upstream.Bounds {
	return upstream.Bounds(s.Config.Zones.DefaultBounds)
}

// ParkingData b 为 nil 时使用默认范围，按描述聚合
func (s *ZoneService) ParkingData(ctx context.Context, b *upstream.Bounds) (*types.ParkingDataResponse, error) {
	bounds := s.DefaultBounds()
	if b != nil {
		bounds = *b
	}
	data, err := s.load(ctx, bounds)
	if err != nil {
		return nil, err
	}

	spots := make(map[string]types.ParkingSpotInfo, len(data.zones))
	for _, z := range data.zones {
		spots[z.Description] = types.ParkingSpotInfo{
			Code:           z.Code,
			ExtDescription: z.ExtDescription,
			Positions:      z.Positions,
			AdditionalInfo: z.AdditionalInfo,
		}
	}
	return &types.ParkingDataResponse{StaleMetadata: data.meta, ParkingSpots: spots}, nil
}

func (s *ZoneService) Descriptions(ctx context.Context) ([]string, error) {
	data, err := s.load(ctx, s.DefaultBounds())
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(data.zones))
	for _, z := range data.zones {
		out = append(out, z.Description)
	}
	return out, nil
}

// Coordinates 区域编码对应的所有 [lat, lng]，找不到时为空
func (s *ZoneService) Coordinates(ctx context.Context, code string) (*types.ZoneCoordinatesResponse, error) {
	data, err := s.load(ctx, s.DefaultBounds())
	if err != nil {
		return nil, err
	}
	coords := make([][2]float64, 0)
	for _, z := range data.zones {
		if z.Code == nil || *z.Code != code {
			continue
		}
		for _, p := range z.Positions {
			coords = append(coords, [2]float64{p.Lat, p.Lng})
		}
	}
	return &types.ZoneCoordinatesResponse{StaleMetadata: data.meta, Coordinates: coords}, nil
}

func (s *ZoneService) RawZones(ctx context.Context) (*types.RawZonesResponse, error) {
	data, err := s.load(ctx, s.DefaultBounds())
	if err != nil {
		return nil, err
	}
	return &types.RawZonesResponse{StaleMetadata: data.meta, Zones: data.zones}, nil
}

// DescriptionToZones 没有编码的区域跳过
func (s *ZoneService) DescriptionToZones(ctx context.Context) (map[string]string, error) {
	data, err := s.load(ctx, s.DefaultBounds())
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(data.zones))
	for _, z := range data.zones {
		if z.Code != nil {
			out[z.Description] = *z.Code
		}
	}
	return out, nil
}

// Refresh 绕过缓存直接请求上游并更新快照
func (s *ZoneService) Refresh(ctx context.Context, b upstream.Bounds) error {
	res, err := s.Upstream.FetchZones(ctx, b)
	if err != nil {
		return err
	}
	s.persist(ctx, b.Key(), res)
	return nil
}

// load 依次尝试 redis 缓存、上游、快照
func (s *ZoneService) load(ctx context.Context, b upstream.Bounds) (*zoneData, error) {
	key := b.Key()

	if raw, err := s.Cache.Get(ctx, key); err == nil && raw != nil {
		if zones, err := upstream.ParseZones(raw); err == nil {
			log.L.Debug("zone cache hit", zap.String("bounds", key))
			return &zoneData{zones: zones, meta: types.StaleMetadata{BoundsKey: &key}}, nil
		}
	} else if err != nil && !errors.Is(err, cache.ErrDisabled) {
		log.L.Warn("zone cache get", zap.String("bounds", key), zap.Error(err))
	}

	res, err := s.Upstream.FetchZones(ctx, b)
	if err == nil {
		zones, perr := upstream.ParseZones(res.Data)
		if perr == nil {
			s.persist(ctx, key, res)
			fetchedAt := res.FetchedAt.Format(time.RFC3339)
			return &zoneData{zones: zones, meta: types.StaleMetadata{BoundsKey: &key, FetchedAt: &fetchedAt}}, nil
		}
		err = perr
	}

	return s.fallback(ctx, key, err)
}

func (s *ZoneService) persist(ctx context.Context, key string, res *upstream.Result) {
	if err := s.SnapshotDAO.Upsert(ctx, key, res.Data, res.FetchedAt); err != nil {
		log.L.Warn("upsert zone snapshot", zap.String("bounds", key), zap.Error(err))
	}
	if err := s.Cache.Set(ctx, key, res.Data); err != nil && !errors.Is(err, cache.ErrDisabled) {
		log.L.Warn("zone cache set", zap.String("bounds", key), zap.Error(err))
	}
}

// fallback 上游失败时返回快照并标记 stale
func (s *ZoneService) fallback(ctx context.Context, key string, cause error) (*zoneData, error) {
	var blocked *upstream.BlockedError
	isBlocked := errors.As(cause, &blocked)

	snap, err := s.SnapshotDAO.Get(ctx, key)
	if err != nil {
		log.L.Error("get zone snapshot", zap.String("bounds", key), zap.Error(err))
	}
	if snap != nil {
		zones, perr := upstream.ParseZones(snap.Data)
		if perr == nil {
			reason := staleUpstreamError
			if isBlocked {
				reason = staleUpstreamBlocked
			}
			fetchedAt := snap.FetchedAt.UTC().Format(time.RFC3339)
			meta := types.StaleMetadata{
				Stale:       true,
				StaleReason: &reason,
				BoundsKey:   &key,
				FetchedAt:   &fetchedAt,
			}
			if status := upstream.Status(cause); status != 0 {
				meta.UpstreamStatus = &status
			}
			log.L.Warn("serving stale zone snapshot", zap.String("bounds", key), zap.String("reason", reason), zap.Error(cause))
			return &zoneData{zones: zones, meta: meta}, nil
		}
		log.L.Error("zone snapshot invalid", zap.String("bounds", key), zap.Error(perr))
	}

	if isBlocked {
		return nil, &ZoneUnavailableError{Detail: map[string]any{
			"error":           "upstream_blocked_and_no_cache",
			"upstream_status": blocked.Status,
			"content_type":    blocked.ContentType,
			"preview":         blocked.Preview,
		}}
	}
	return nil, &ZoneUnavailableError{Detail: map[string]any{
		"error":  "upstream_failed",
		"reason": cause.Error(),
	}}
}
