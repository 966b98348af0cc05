package favorites

import (
	"Revamp/pkg/snowflake"
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// ErrTemporaryID 临时 ID 只存在于乐观写入和服务端确认之间，不允许序列化
var ErrTemporaryID = errors.New("favorites: temporary id cannot be serialized")

// ID 收藏记录标识。服务端确认的 ID 和客户端占位 ID 是两个不同的空间，
// 通过 temp 标记区分，避免占位 ID 被持久化或发送给服务端。
type ID struct {
	value string
	temp  bool
}

// ServerID 服务端分配的 ID
func ServerID(v string) ID {
	return ID{value: v}
}

func newTempID() ID {
	return ID{value: snowflake.GenTempID(), temp: true}
}

func (id ID) String() string { return id.value }

// IsTemporary 是否为客户端占位 ID
func (id ID) IsTemporary() bool { return id.temp }

func (id ID) IsZero() bool { return id.value == "" }

func (id ID) MarshalJSON() ([]byte, error) {
	if id.temp {
		return nil, ErrTemporaryID
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON 兼容字符串和数字两种 ID，反序列化得到的总是服务端 ID
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ID{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ServerID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ServerID(n.String())
	return nil
}

// Record 收藏的停车区域
type Record struct {
	ID              ID         `json:"id"`
	UserID          int64      `json:"user_id,omitempty"`
	ZoneCode        string     `json:"zone_code"`
	ZoneDescription *string    `json:"zone_description"`
	Notes           *string    `json:"notes"`
	DisplayOrder    int        `json:"display_order"`
	TimesUsed       int        `json:"times_used"`
	LastUsed        *time.Time `json:"last_used"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Pending 记录还未被服务端确认
func (r Record) Pending() bool { return r.ID.IsTemporary() }

// Description 返回区域描述，没有描述时返回空串
func (r Record) Description() string {
	if r.ZoneDescription == nil {
		return ""
	}
	return *r.ZoneDescription
}

func (r Record) clone() Record {
	c := r
	if r.ZoneDescription != nil {
		v := *r.ZoneDescription
		c.ZoneDescription = &v
	}
	if r.Notes != nil {
		v := *r.Notes
		c.Notes = &v
	}
	if r.LastUsed != nil {
		v := *r.LastUsed
		c.LastUsed = &v
	}
	return c
}

// CreateRequest POST /favorites/ 请求体
type CreateRequest struct {
	ZoneCode        string  `json:"zone_code"`
	ZoneDescription *string `json:"zone_description"`
	Notes           *string `json:"notes,omitempty"`
}

// OrderItem PATCH /favorites/reorder 中的一项
type OrderItem struct {
	ID           ID  `json:"id"`
	DisplayOrder int `json:"display_order"`
}

// Credential 访问远端服务的 Bearer 凭证，由调用方显式传入
type Credential struct {
	Token string
}

func (c Credential) Valid() bool { return c.Token != "" }

func now() time.Time { return time.Now().UTC() }
