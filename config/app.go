package config

type App struct {
	Env      string `json:"env" yaml:"env"`
	Debug    bool   `json:"debug" yaml:"debug"`
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Prod 生产环境必须配置 SECRET_KEY
func (a *App) Prod() bool {
	return a.Env == "prod"
}
