package proxy

import (
	"fmt"
	"net/url"

	"shipping-calculator/internal/core/config"
)

// Settings contains the outbound proxy used by HTTP adapters.
type Settings struct {
	Enabled  bool
	Hostname string
	Port     int
	Username string
	Password string
}

// FromConfig maps the loaded proxy configuration.
func FromConfig(cfg config.ProxyConfig) Settings {
	return Settings{
		Enabled:  cfg.Enabled,
		Hostname: cfg.Hostname,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
	}
}

// HasProxy returns true if proxy is enabled and configured.
func (p Settings) HasProxy() bool {
	return p.Enabled && p.Hostname != "" && p.Port > 0
}

// URL returns the proxy URL with credentials, or nil when no proxy is configured.
func (p Settings) URL() *url.URL {
	if !p.HasProxy() {
		return nil
	}
	u := &url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s:%d", p.Hostname, p.Port),
	}
	if p.Username != "" && p.Password != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u
}
