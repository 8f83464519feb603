package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_BASE_URL points at a running server, e.g. http://localhost:8000.
	// The suites skip when it is empty.
	BaseURL    string `envconfig:"E2E_BASE_URL"`
	AdminToken string `envconfig:"E2E_ADMIN_TOKEN"`
	Origin     string `envconfig:"E2E_ORIGIN" default:"http://localhost:3000"`
	// E2E_DEBUG_JSON dumps full request and response bodies
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
