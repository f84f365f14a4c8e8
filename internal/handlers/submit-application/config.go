// internal/handlers/submit-application/config.go
package submitapplication

import (
	"time"

	"dygs-jobs/internal/common/config"
)

type Config struct {
	IDPrefix       string
	LineOAURL      string
	MaxResumeBytes int64
	Timeout        time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		IDPrefix:       config.DefaultIDPrefix,
		LineOAURL:      config.DefaultLineOAURL,
		MaxResumeBytes: config.DefaultMaxResumeBytes,
		Timeout:        30 * time.Second,
	}
	if cfg == nil {
		return c
	}
	if cfg.App.IDPrefix != "" {
		c.IDPrefix = cfg.App.IDPrefix
	}
	if cfg.App.LineOAURL != "" {
		c.LineOAURL = cfg.App.LineOAURL
	}
	if cfg.Resumes.MaxBytes > 0 {
		c.MaxResumeBytes = cfg.Resumes.MaxBytes
	}
	if cfg.Server.RequestTimeout > 0 {
		c.Timeout = config.GetDuration(cfg.Server.RequestTimeout)
	}
	return c
}

// bodyLimit leaves room for the text fields and multipart framing.
func (c *Config) bodyLimit() int64 {
	return c.MaxResumeBytes + 1<<20
}
