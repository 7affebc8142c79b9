package app

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/api"
	"github.com/shrimpsizemoose/gradehub/internal/forms"
	"github.com/shrimpsizemoose/gradehub/internal/scoring"
	"github.com/shrimpsizemoose/gradehub/internal/views"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultUserAgent  = "gradehub"
	defaultPort       = ":8080"
	defaultXLSXPath   = "grades.xlsx"
	defaultSummaryKey = "gradehub:dashboard"
)

type Config struct {
	API struct {
		BaseURL        string `toml:"base_url"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		UserAgent      string `toml:"user_agent"`
	} `toml:"api"`

	Dashboard struct {
		TopPerformers  int `toml:"top_performers"`
		RecentActivity int `toml:"recent_activity"`
	} `toml:"dashboard"`

	Forms struct {
		SuccessResetMS int `toml:"success_reset_ms"`
	} `toml:"forms"`

	Server struct {
		Port string `toml:"port"`
	} `toml:"server"`

	Export struct {
		XLSXPath   string `toml:"xlsx_path"`
		RedisURL   string `toml:"redis_url"`
		SummaryKey string `toml:"summary_key"`
	} `toml:"export"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return ParseConfig(path, data)
}

// ParseConfig decodes TOML and fills in defaults. path is only used in
// error messages.
func ParseConfig(path string, data []byte) (*Config, error) {
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if config.API.BaseURL == "" {
		return nil, fmt.Errorf("API base URL is not specified in config, use a value like http://localhost:8080")
	}

	config.applyDefaults()
	logger.Debug.Printf("Loaded config: api=%s dashboard=%+v", config.API.BaseURL, config.Dashboard)

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = int(defaultTimeout / time.Second)
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = defaultUserAgent
	}
	if c.Dashboard.TopPerformers <= 0 {
		c.Dashboard.TopPerformers = scoring.DefaultTopPerformers
	}
	if c.Dashboard.RecentActivity <= 0 {
		c.Dashboard.RecentActivity = scoring.DefaultRecentActivity
	}
	if c.Forms.SuccessResetMS <= 0 {
		c.Forms.SuccessResetMS = int(forms.DefaultSuccessReset / time.Millisecond)
	}
	if c.Server.Port == "" {
		c.Server.Port = defaultPort
	}
	if c.Export.XLSXPath == "" {
		c.Export.XLSXPath = defaultXLSXPath
	}
	if c.Export.SummaryKey == "" {
		c.Export.SummaryKey = defaultSummaryKey
	}
}

func (c *Config) Client() api.Config {
	return api.Config{
		BaseURL:   c.API.BaseURL,
		Timeout:   time.Duration(c.API.TimeoutSeconds) * time.Second,
		UserAgent: c.API.UserAgent,
	}
}

func (c *Config) DashboardOptions() views.DashboardOptions {
	return views.DashboardOptions{
		TopPerformers:  c.Dashboard.TopPerformers,
		RecentActivity: c.Dashboard.RecentActivity,
	}
}

func (c *Config) FormOptions() forms.Options {
	return forms.Options{
		SuccessReset: time.Duration(c.Forms.SuccessResetMS) * time.Millisecond,
	}
}
