package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DB struct {
		DSN string `yaml:"dsn"`
	} `yaml:"db"`
	Pesapal struct {
		BaseURL        string `yaml:"base_url"`
		ConsumerKey    string `yaml:"consumer_key"`
		ConsumerSecret string `yaml:"consumer_secret"`
		IPNURL         string `yaml:"ipn_url"`
	} `yaml:"pesapal"`
}

// Load reads the yaml config file and applies env overrides. Path resolution:
// explicit arg, then CONFIG_PATH, then configs/config.yaml. A missing file is
// fine when every required value comes from the environment.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "configs/config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnvOverrides(&cfg)

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.DB.DSN == "" {
		return nil, errors.New("db.dsn is required")
	}
	if cfg.Pesapal.BaseURL == "" || cfg.Pesapal.ConsumerKey == "" || cfg.Pesapal.ConsumerSecret == "" {
		return nil, errors.New("pesapal config is incomplete")
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DB.DSN = v
	}
	if v := os.Getenv("PESAPAL_API_URL"); v != "" {
		cfg.Pesapal.BaseURL = v
	}
	if v := os.Getenv("PESAPAL_CONSUMER_KEY"); v != "" {
		cfg.Pesapal.ConsumerKey = v
	}
	if v := os.Getenv("PESAPAL_CONSUMER_SECRET"); v != "" {
		cfg.Pesapal.ConsumerSecret = v
	}
	if v := os.Getenv("PESAPAL_IPN_URL"); v != "" {
		cfg.Pesapal.IPNURL = v
	}
}
