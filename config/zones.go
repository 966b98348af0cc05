package config

import "time"

// Bounds 经纬度范围
type Bounds struct {
	LeftLong  float64 `json:"left_long" yaml:"left_long"`
	RightLong float64 `json:"right_long" yaml:"right_long"`
	TopLat    float64 `json:"top_lat" yaml:"top_lat"`
	BottomLat float64 `json:"bottom_lat" yaml:"bottom_lat"`
}

func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

type Zones struct {
	// DefaultBounds 校园主区域
	DefaultBounds Bounds `json:"default_bounds" yaml:"default_bounds"`
	// CityBounds 覆盖整个 Davis
	CityBounds      Bounds `json:"city_bounds" yaml:"city_bounds"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds" yaml:"cache_ttl_seconds"`
	// RefreshCron 为空时不定时刷新快照
	RefreshCron string `json:"refresh_cron" yaml:"refresh_cron"`
}

func (z *Zones) fillDefaults() {
	if z.DefaultBounds.IsZero() {
		z.DefaultBounds = Bounds{
			LeftLong:  -121.75565688680798,
			RightLong: -121.73782556127698,
			TopLat:    38.53997670732033,
			BottomLat: 38.52654855404775,
		}
	}
	if z.CityBounds.IsZero() {
		z.CityBounds = Bounds{LeftLong: -121.78, RightLong: -121.74, TopLat: 38.55, BottomLat: 38.52}
	}
	if z.CacheTTLSeconds == 0 {
		z.CacheTTLSeconds = 300
	}
}

func (z *Zones) CacheTTL() time.Duration {
	return time.Duration(z.CacheTTLSeconds) * time.Second
}
