package utils

import (
	"errors"

	"github.com/speps/go-hashids/v2"
)

var ErrInvalidHashID = errors.New("invalid hash id")

// HashID 数据库自增 id 与对外字符串 id 互转
type HashID struct {
	h *hashids.HashID
}

func NewHashID(salt string, minLength int) (*HashID, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = minLength
	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	return &HashID{h: h}, nil
}

func (h *HashID) Encode(id uint64) string {
	e, _ := h.h.EncodeInt64([]int64{int64(id)})
	return e
}

func (h *HashID) Decode(s string) (uint64, error) {
	if s == "" {
		return 0, ErrInvalidHashID
	}
	ids, err := h.h.DecodeInt64WithError(s)
	if err != nil || len(ids) != 1 || ids[0] <= 0 {
		return 0, ErrInvalidHashID
	}
	return uint64(ids[0]), nil
}
