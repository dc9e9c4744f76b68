package source

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kilianp07/confsched/core/model"
)

// Config defines where sessions come from.
type Config struct {
	// APIURL is the sessions endpoint returning {"results": [...]}.
	APIURL string `json:"api_url"`
	// Token is sent verbatim as the Authorization header, e.g. "Token abc".
	Token string `json:"token"`
	// CacheFile holds the raw API response between runs.
	CacheFile string `json:"cache_file"`
	// TimeoutSeconds bounds the API request.
	TimeoutSeconds int `json:"timeout_seconds"`
	// RoomLanguage selects localized room names.
	RoomLanguage string `json:"room_language"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.CacheFile == "" {
		c.CacheFile = "sessions.json"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.RoomLanguage == "" {
		c.RoomLanguage = model.DefaultLanguage
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.CacheFile == "" {
		return fmt.Errorf("source: cache_file is required")
	}
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("source: invalid api_url %q", c.APIURL)
		}
	}
	return nil
}

// Timeout returns the request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
