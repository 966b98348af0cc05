package config

import "fmt"

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Database 数据库配置，DSN 不为空时优先使用
type Database struct {
	Driver   string `json:"driver" yaml:"driver"`
	DSN      string `json:"dsn" yaml:"dsn"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	UserName string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
	Charset  string `json:"charset" yaml:"charset"`
	// Path sqlite 文件路径
	Path string `json:"path" yaml:"path"`
}

func (d *Database) fillDefaults() {
	if d.Driver == "" {
		d.Driver = DriverSQLite
	}
	if d.Charset == "" {
		d.Charset = "utf8mb4"
	}
	if d.Path == "" {
		d.Path = "revamp.db"
	}
}

func (d *Database) Dsn() string {
	if d.DSN != "" {
		return d.DSN
	}
	if d.Driver == DriverSQLite {
		return d.Path
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		d.UserName, d.Password, d.Host, d.Port, d.Database, d.Charset,
	)
}
