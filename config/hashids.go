package config

// Hashids 收藏 id 在接口上的编码参数
type Hashids struct {
	Salt      string `json:"salt" yaml:"salt"`
	MinLength int    `json:"min_length" yaml:"min_length"`
}
