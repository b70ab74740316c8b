package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the worklog CLI.
type Config struct {
	ConfigFile         string
	ServerEndpointAddr string
	SessionDBPath      string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.SessionDBPath = "worklog-session.db"
	c.RequestTimeout = 10 * time.Second
}

func (c *Config) Validate() error {
	switch {
	case c.ServerEndpointAddr == "":
		return fmt.Errorf("server address is required")
	case c.SessionDBPath == "":
		return fmt.Errorf("session db path is required")
	case c.RequestTimeout <= 0:
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// New returns a Config with defaults applied.
func New() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	return cfg
}
