package types

import "Revamp/pkg/upstream"

// StaleMetadata 上游失败时返回快照的标记
type StaleMetadata struct {
	Stale          bool    `json:"stale"`
	StaleReason    *string `json:"stale_reason"`
	BoundsKey      *string `json:"bounds_key"`
	FetchedAt      *string `json:"fetched_at"`
	UpstreamStatus *int    `json:"upstream_status"`
}

// BoundsRequest POST /api/data 请求体，指针用于区分缺失字段和 0
type BoundsRequest struct {
	LeftLong  *float64 `json:"left_long" binding:"required,gte=-180,lte=180"`
	RightLong *float64 `json:"right_long" binding:"required,gte=-180,lte=180"`
	TopLat    *float64 `json:"top_lat" binding:"required,gte=-90,lte=90"`
	BottomLat *float64 `json:"bottom_lat" binding:"required,gte=-90,lte=90"`
}

func (r BoundsRequest) Bounds() upstream.Bounds {
	return upstream.Bounds{LeftLong: *r.LeftLong, RightLong: *r.RightLong, TopLat: *r.TopLat, BottomLat: *r.BottomLat}
}

type ParkingSpotInfo struct {
	Code           *string             `json:"code"`
	ExtDescription *string             `json:"ext_description"`
	Positions      []upstream.Position `json:"positions"`
	AdditionalInfo *string             `json:"additional_info"`
}

type ParkingDataResponse struct {
	StaleMetadata
	ParkingSpots map[string]ParkingSpotInfo `json:"parkingSpots"`
}

type ZoneCoordinatesResponse struct {
	StaleMetadata
	Coordinates [][2]float64 `json:"coordinates"`
}

type RawZonesResponse struct {
	StaleMetadata
	Zones []upstream.Zone `json:"zones"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
