package config

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort         = "4000"
	defaultClientOrigin = "http://localhost:5500"
	// defaultJWTSecret matches the development fallback the API shipped with.
	// Production deployments must override it.
	defaultJWTSecret = "change-this-secret"

	configFile = "config.yaml"
)

// Config holds the runtime configuration for the API server
type Config struct {
	DatabaseURL   string   `yaml:"database_url"`
	Port          string   `yaml:"port"`
	JWTSecret     string   `yaml:"jwt_secret"`
	ClientOrigins []string `yaml:"client_origins"`
}

// LoadConfig reads the optional config.yaml, then applies environment
// overrides on top. DATABASE_URL is the only hard requirement.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          defaultPort,
		JWTSecret:     defaultJWTSecret,
		ClientOrigins: []string{defaultClientOrigin},
	}

	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("CLIENT_ORIGIN"); v != "" {
		// allow comma-separated list of origins
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.ClientOrigins = origins
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	return cfg, nil
}
