package config

import (
	"strconv"
	"strings"
)

// Redis Redis配置信息，Address 为空时不启用
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
}

func (r *Redis) Enabled() bool {
	return r.Address != ""
}

// Addr Address 已带端口时原样返回
func (r *Redis) Addr() string {
	if strings.Contains(r.Address, ":") || r.Port == 0 {
		return r.Address
	}
	return r.Address + ":" + strconv.Itoa(r.Port)
}
