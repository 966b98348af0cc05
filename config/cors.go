package config

type Cors struct {
	Origins          []string `json:"origins" yaml:"origins"`
	AllowCredentials bool     `json:"allow_credentials" yaml:"allow_credentials"`
}

func (c *Cors) fillDefaults() {
	if len(c.Origins) == 0 {
		c.Origins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
		}
	}
}

// Allowed "*" 允许所有来源
func (c *Cors) Allowed(origin string) bool {
	for _, o := range c.Origins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
