package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App       *App       `json:"app" yaml:"app"`
	Server    *Server    `json:"server" yaml:"server"`
	Database  *Database  `json:"database" yaml:"database"`
	Redis     *Redis     `json:"redis" yaml:"redis"`
	Jwt       *Jwt       `json:"jwt" yaml:"jwt"`
	Hashids   *Hashids   `json:"hashids" yaml:"hashids"`
	RateLimit *RateLimit `json:"rate_limit" yaml:"rate_limit"`
	Upstream  *Upstream  `json:"upstream" yaml:"upstream"`
	Zones     *Zones     `json:"zones" yaml:"zones"`
	Cors      *Cors      `json:"cors" yaml:"cors"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

// New 读取配置文件，失败直接 panic
func New(filename string) *Config {
	conf, err := Load(filename)
	if err != nil {
		panic(err)
	}
	return conf
}

// Load 先加载 .env，再解析 yaml，最后用环境变量覆盖
func Load(filename string) (*Config, error) {
	// .env 不存在时忽略，已存在的环境变量不会被覆盖
	_ = godotenv.Load()

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, fmt.Errorf("解析 %s 读取错误: %w", filename, err)
	}

	conf.fillDefaults()
	conf.applyEnv()
	return &conf, nil
}

// Default 全部使用默认值，测试和命令行迁移时使用
func Default() *Config {
	var conf Config
	conf.fillDefaults()
	return &conf
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}

func (c *Config) fillDefaults() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8000
	}
	if c.Database == nil {
		c.Database = &Database{}
	}
	c.Database.fillDefaults()
	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	c.Jwt.fillDefaults()
	if c.Hashids == nil {
		c.Hashids = &Hashids{}
	}
	if c.Hashids.MinLength == 0 {
		c.Hashids.MinLength = 8
	}
	if c.RateLimit == nil {
		c.RateLimit = &RateLimit{Enabled: true}
	}
	if c.Upstream == nil {
		c.Upstream = &Upstream{}
	}
	c.Upstream.fillDefaults()
	if c.Zones == nil {
		c.Zones = &Zones{}
	}
	c.Zones.fillDefaults()
	if c.Cors == nil {
		c.Cors = &Cors{}
	}
	c.Cors.fillDefaults()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.App.Env = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.Jwt.Secret = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Address = v
	}
	if v := os.Getenv("UPSTREAM_URL"); v != "" {
		c.Upstream.URL = v
	}
	if v := os.Getenv("UPSTREAM_PROXY_URL"); v != "" {
		c.Upstream.ProxyURL = v
	}
	if v := os.Getenv("UPSTREAM_PROXY_TOKEN"); v != "" {
		c.Upstream.ProxyToken = v
	}
	if v, err := strconv.Atoi(os.Getenv("CACHE_TTL_SECONDS")); err == nil && v > 0 {
		c.Zones.CacheTTLSeconds = v
	}
	if v, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES")); err == nil && v > 0 {
		c.Jwt.ExpireMinutes = v
	}
}
