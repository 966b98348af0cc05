package config

import "time"

const devSecret = "dev-only-insecure-key-do-not-use-in-production"

type Jwt struct {
	Secret        string `json:"secret" yaml:"secret"`
	ExpireMinutes int    `json:"expire_minutes" yaml:"expire_minutes"`
}

func (j *Jwt) fillDefaults() {
	if j.ExpireMinutes == 0 {
		j.ExpireMinutes = 30
	}
}

func (j *Jwt) Expire() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

// SecretKey 非生产环境未配置时使用开发密钥
func (c *Config) SecretKey() ([]byte, error) {
	if c.Jwt.Secret != "" {
		return []byte(c.Jwt.Secret), nil
	}
	if c.App.Prod() {
		return nil, ErrMissingSecret
	}
	return []byte(devSecret), nil
}
