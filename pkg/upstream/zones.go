package upstream

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Bounds 查询范围
type Bounds struct {
	LeftLong  float64 `json:"left_long"`
	RightLong float64 `json:"right_long"`
	TopLat    float64 `json:"top_lat"`
	BottomLat float64 `json:"bottom_lat"`
}

// Key 保留 5 位小数，作为快照和缓存的 key
func (b Bounds) Key() string {
	parts := make([]string, 0, 4)
	for _, v := range []float64{b.LeftLong, b.RightLong, b.TopLat, b.BottomLat} {
		parts = append(parts, strconv.FormatFloat(round(v, 5), 'f', 5, 64))
	}
	return strings.Join(parts, "_")
}

func round(v float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(v*p) / p
}

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Zone struct {
	Code           *string    `json:"code"`
	Description    string     `json:"description"`
	ExtDescription *string    `json:"ext_description"`
	Positions      []Position `json:"positions"`
	AdditionalInfo *string    `json:"additional_info"`
}

// ParseZones 校验并取出 zones，description 和 positions 必填
func ParseZones(data []byte) ([]Zone, error) {
	if !gjson.ValidBytes(data) {
		return nil, &InvalidError{Reason: "invalid JSON", Preview: preview(data)}
	}
	arr := gjson.GetBytes(data, "zones")
	if !arr.IsArray() {
		return nil, &InvalidError{Reason: "zones must be an array", Preview: preview(data)}
	}

	zones := make([]Zone, 0, len(arr.Array()))
	var perr error
	arr.ForEach(func(idx, z gjson.Result) bool {
		desc := z.Get("description")
		if desc.Type != gjson.String {
			perr = &InvalidError{Reason: fmt.Sprintf("zones.%d.description is required", idx.Int())}
			return false
		}
		pos := z.Get("positions")
		if !pos.IsArray() {
			perr = &InvalidError{Reason: fmt.Sprintf("zones.%d.positions must be an array", idx.Int())}
			return false
		}

		zone := Zone{
			Code:           optString(z.Get("code")),
			Description:    desc.String(),
			ExtDescription: optString(z.Get("ext_description")),
			AdditionalInfo: optString(z.Get("additional_info")),
			Positions:      make([]Position, 0, len(pos.Array())),
		}
		for _, p := range pos.Array() {
			lat, lng := p.Get("lat"), p.Get("lng")
			if lat.Type != gjson.Number || lng.Type != gjson.Number {
				perr = &InvalidError{Reason: fmt.Sprintf("zones.%d.positions lat/lng must be numbers", idx.Int())}
				return false
			}
			zone.Positions = append(zone.Positions, Position{Lat: lat.Float(), Lng: lng.Float()})
		}
		zones = append(zones, zone)
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return zones, nil
}

// code 有时是数字
func optString(r gjson.Result) *string {
	switch r.Type {
	case gjson.String, gjson.Number:
		s := r.String()
		return &s
	default:
		return nil
	}
}

func preview(data []byte) string {
	if len(data) > 200 {
		data = data[:200]
	}
	return string(data)
}
