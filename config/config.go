package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultSessionValidityHours = 24

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`

	Model struct {
		BaseURL   string `yaml:"base_url"`
		APIKey    string `yaml:"api_key"`
		Name      string `yaml:"name"`
		MaxTokens int    `yaml:"max_tokens"`
	} `yaml:"model"`

	JWT struct {
		SecretKey string `yaml:"secret_key"`
	} `yaml:"jwt"`

	Session struct {
		ValidityHours int `yaml:"validity_hours"`
	} `yaml:"session"`
}

var Cfg Config

func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}

	if err := yaml.Unmarshal(data, &Cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}

	if Cfg.Session.ValidityHours <= 0 {
		Cfg.Session.ValidityHours = defaultSessionValidityHours
	}

	return nil
}
