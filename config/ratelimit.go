package config

// RateLimit 各路由的限流规则写在 handler 里，这里只控制开关和 key 前缀
type RateLimit struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Prefix  string `json:"prefix" yaml:"prefix"`
}
