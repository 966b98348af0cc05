package config

import "time"

const defaultUpstreamURL = "https://aimsmobilepay.com/api/zone/index.php"

// Upstream 停车区域数据源
type Upstream struct {
	URL        string `json:"url" yaml:"url"`
	ProxyURL   string `json:"proxy_url" yaml:"proxy_url"`
	ProxyToken string `json:"proxy_token" yaml:"proxy_token"`
	// TimeoutSeconds 单次请求超时
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
	Attempts       int `json:"attempts" yaml:"attempts"`
	// MicroCacheSeconds 进程内相同 bounds 的短缓存
	MicroCacheSeconds      int `json:"micro_cache_seconds" yaml:"micro_cache_seconds"`
	CircuitThreshold       int `json:"circuit_threshold" yaml:"circuit_threshold"`
	CircuitWindowSeconds   int `json:"circuit_window_seconds" yaml:"circuit_window_seconds"`
	CircuitCooldownSeconds int `json:"circuit_cooldown_seconds" yaml:"circuit_cooldown_seconds"`
}

// fillDefaults 零值和负数都回到默认值
func (u *Upstream) fillDefaults() {
	if u.URL == "" {
		u.URL = defaultUpstreamURL
	}
	if u.TimeoutSeconds <= 0 {
		u.TimeoutSeconds = 30
	}
	if u.Attempts <= 0 {
		u.Attempts = 3
	}
	if u.MicroCacheSeconds <= 0 {
		u.MicroCacheSeconds = 2
	}
	if u.CircuitThreshold <= 0 {
		u.CircuitThreshold = 10
	}
	if u.CircuitWindowSeconds <= 0 {
		u.CircuitWindowSeconds = 30
	}
	if u.CircuitCooldownSeconds <= 0 {
		u.CircuitCooldownSeconds = 30
	}
}

func (u *Upstream) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// Target 配置了代理时请求代理
func (u *Upstream) Target() string {
	if u.ProxyURL != "" {
		return u.ProxyURL
	}
	return u.URL
}
