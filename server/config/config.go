package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Config captures the service's external configuration, read from the
// environment. Secrets never get default values.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	ListenAddr   string
	MetricsAddr  string
}

func Load() *Config {
	c := &Config{
		TenantID:     os.Getenv("CHATSESSIOND_TENANT_ID"),
		ClientID:     os.Getenv("CHATSESSIOND_CLIENT_ID"),
		ClientSecret: os.Getenv("CHATSESSIOND_CLIENT_SECRET"),
		ListenAddr:   os.Getenv("CHATSESSIOND_LISTEN_ADDR"),
		MetricsAddr:  os.Getenv("CHATSESSIOND_METRICS_ADDR"),
	}

	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = ":9090"
	}

	c.ProcessConfiguration()
	return c
}

func (c *Config) ProcessConfiguration() {
	c.TenantID = strings.TrimSpace(c.TenantID)
	c.ClientID = strings.TrimSpace(c.ClientID)
	c.ClientSecret = strings.TrimSpace(c.ClientSecret)
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)
}

func (c *Config) Validate() error {
	if c.TenantID == "" {
		return errors.New("tenant ID should not be empty")
	}
	if c.ClientID == "" {
		return errors.New("client ID should not be empty")
	}
	if c.ClientSecret == "" {
		return errors.New("client secret should not be empty")
	}
	if c.ListenAddr == c.MetricsAddr {
		return errors.New("listen address and metrics address must differ")
	}
	return nil
}
