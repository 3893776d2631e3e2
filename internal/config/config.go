// Package config provides environment-variable-first configuration loading
// with optional YAML file fallback for the mail relay.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied before the YAML and environment layers.
const (
	defaultPort     = 8080
	defaultProvider = "smtp"
	defaultSMTPHost = "smtp.gmail.com"
	defaultSMTPPort = 465
)

// Config holds the complete application configuration. It is built once at
// startup and treated as read-only afterwards.
type Config struct {
	Provider         string        `yaml:"provider"`
	DefaultRecipient string        `yaml:"default_recipient"`
	HTTP             HTTPConfig    `yaml:"http"`
	Sender           SenderConfig  `yaml:"sender"`
	SMTP             SMTPConfig    `yaml:"smtp"`
	SES              SESConfig     `yaml:"ses"`
	Logging          LoggingConfig `yaml:"logging"`
}

// HTTPConfig holds HTTP listener configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// SenderConfig holds the sending account. Address is also the From header.
type SenderConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
}

// SMTPConfig holds the outbound mail relay address.
type SMTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SESConfig holds AWS SES configuration.
type SESConfig struct {
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load loads configuration from environment variables with sensible defaults.
// Environment variables always take precedence.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnvVars()
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file as the base layer,
// then overrides with environment variables. Returns an error if the
// specified file path does not exist.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables always override YAML values
	cfg.applyEnvVars()

	return cfg, nil
}

// CredentialsConfigured returns true if both sender address and password are set.
func (c *Config) CredentialsConfigured() bool {
	return c.Sender.Address != "" && c.Sender.Password != ""
}

// ListenAddr returns the HTTP listen address for all interfaces.
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.HTTP.Port)
}

// applyDefaults sets sensible default values for all configuration fields.
func (c *Config) applyDefaults() {
	c.Provider = defaultProvider
	c.HTTP.Port = defaultPort
	c.SMTP.Host = defaultSMTPHost
	c.SMTP.Port = defaultSMTPPort
	c.Logging.Level = "info"
}

// applyEnvVars overrides configuration with environment variable values.
// Only non-empty environment variables override existing values.
func (c *Config) applyEnvVars() {
	if v := os.Getenv("PROVIDER"); v != "" {
		c.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := parsePort(v); err == nil {
			c.HTTP.Port = port
		}
	}

	if v := os.Getenv("GMAIL_ADDRESS"); v != "" {
		c.Sender.Address = strings.TrimSpace(v)
	}
	if v := os.Getenv("GMAIL_PASSWORD"); v != "" {
		c.Sender.Password = v
	}
	if v := os.Getenv("RECIPIENT_EMAIL"); v != "" {
		c.DefaultRecipient = strings.TrimSpace(v)
	}

	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := parsePort(v); err == nil {
			c.SMTP.Port = port
		}
	}

	if v := os.Getenv("SES_REGION"); v != "" {
		c.SES.Region = v
	}
	if v := os.Getenv("SES_ACCESS_KEY_ID"); v != "" {
		c.SES.AccessKeyID = v
	}
	if v := os.Getenv("SES_SECRET_ACCESS_KEY"); v != "" {
		c.SES.SecretAccessKey = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

func parsePort(v string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, err
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}
