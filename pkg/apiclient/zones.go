package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

type Bounds struct {
	LeftLong  float64 `json:"left_long"`
	RightLong float64 `json:"right_long"`
	TopLat    float64 `json:"top_lat"`
	BottomLat float64 `json:"bottom_lat"`
}

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ParkingSpot struct {
	Code           *string    `json:"code"`
	ExtDescription *string    `json:"ext_description"`
	Positions      []Position `json:"positions"`
	AdditionalInfo *string    `json:"additional_info"`
}

// Stale 服务端在上游失败时返回的快照标记
type Stale struct {
	Stale          bool    `json:"stale"`
	StaleReason    *string `json:"stale_reason"`
	BoundsKey      *string `json:"bounds_key"`
	FetchedAt      *string `json:"fetched_at"`
	UpstreamStatus *int    `json:"upstream_status"`
}

type ParkingData struct {
	Stale
	ParkingSpots map[string]ParkingSpot `json:"parkingSpots"`
}

type ZoneCoordinates struct {
	Stale
	Coordinates [][2]float64 `json:"coordinates"`
}

// ParkingData bounds 为 nil 时使用服务端默认的校园范围
func (c *Client) ParkingData(ctx context.Context, bounds *Bounds) (ParkingData, error) {
	var (
		out ParkingData
		err error
	)
	if bounds == nil {
		err = c.do(ctx, http.MethodGet, "/api/data", "", nil, &out)
	} else {
		err = c.do(ctx, http.MethodPost, "/api/data", "", bounds, &out)
	}
	return out, err
}

// ZoneDescriptions 默认范围内所有区域描述
func (c *Client) ZoneDescriptions(ctx context.Context) ([]string, error) {
	out := make([]string, 0)
	err := c.do(ctx, http.MethodGet, "/api/zones", "", nil, &out)
	return out, err
}

func (c *Client) ZoneCoordinates(ctx context.Context, code string) (ZoneCoordinates, error) {
	var out ZoneCoordinates
	err := c.do(ctx, http.MethodGet, "/api/zones/"+url.PathEscape(code), "", nil, &out)
	return out, err
}

// DescriptionToZones 描述到区域编码的映射
func (c *Client) DescriptionToZones(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string)
	err := c.do(ctx, http.MethodGet, "/api/filter/description_to_zones", "", nil, &out)
	return out, err
}
