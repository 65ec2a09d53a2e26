// Package config provides YAML-based configuration loading for Vigia.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Vigia configuration, loaded from vigia.yaml.
type Config struct {
	Port      int    `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	ReportDir string `yaml:"report_dir"`

	DataJud  DataJudConfig  `yaml:"datajud"`
	Comunica ComunicaConfig `yaml:"comunica"`
	Cron     CronConfig     `yaml:"cron"`
	Slack    SlackConfig    `yaml:"slack"`

	// WatchNames are proper names whose mention in an intimation gets a
	// marker prepended to the excerpt, checked in order.
	WatchNames []string `yaml:"watch_names"`
}

// DataJudConfig holds settings for the DataJud movement index API.
type DataJudConfig struct {
	APIKey string `yaml:"api_key"`
	// Court is the default search partition; FallbackCourt is probed
	// when the default partition has no hits.
	Court         string `yaml:"court"`
	FallbackCourt string `yaml:"fallback_court"`
	DelayMS       int    `yaml:"delay_ms"`
}

// ComunicaConfig holds settings for the Comunica PJe feed.
type ComunicaConfig struct {
	// DelayMS spaces requests to stay under the feed's 20/min limit.
	DelayMS int `yaml:"delay_ms"`
}

// CronConfig lists the daily trigger times ("HH:MM") for each sync job.
type CronConfig struct {
	Enabled  bool     `yaml:"enabled"`
	DataJud  []string `yaml:"datajud"`
	Comunica []string `yaml:"comunica"`
}

// SlackConfig enables best-effort alerts after sync runs.
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	Channel    string `yaml:"channel"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in derived and default values. The constants mirror
// the deployment this system was built for.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 3100
	}
	if c.DBPath == "" {
		c.DBPath = "vigia.db"
	}
	if c.ReportDir == "" {
		c.ReportDir = "."
	}
	if c.DataJud.APIKey == "" {
		c.DataJud.APIKey = os.Getenv("DATAJUD_API_KEY")
	}
	if c.DataJud.Court == "" {
		c.DataJud.Court = "trt2"
	}
	if c.DataJud.FallbackCourt == "" {
		c.DataJud.FallbackCourt = "tst"
	}
	if c.DataJud.DelayMS == 0 {
		c.DataJud.DelayMS = 500
	}
	if c.Comunica.DelayMS == 0 {
		// ~18 req/min, under the feed's 20/min ceiling.
		c.Comunica.DelayMS = 3200
	}
	if len(c.Cron.DataJud) == 0 {
		c.Cron.DataJud = []string{"07:00", "19:00"}
	}
	if len(c.Cron.Comunica) == 0 {
		c.Cron.Comunica = []string{"06:00", "10:00", "14:00", "18:00"}
	}
	if len(c.WatchNames) == 0 {
		c.WatchNames = []string{"RAPHAEL", "FERNANDA", "BRASSPLATE"}
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("port %d out of range", c.Port))
	}
	if c.DataJud.DelayMS < 0 {
		errs = append(errs, "datajud.delay_ms must not be negative")
	}
	if c.Comunica.DelayMS < 0 {
		errs = append(errs, "comunica.delay_ms must not be negative")
	}
	for _, hm := range append(append([]string{}, c.Cron.DataJud...), c.Cron.Comunica...) {
		if _, _, err := ParseClock(hm); err != nil {
			errs = append(errs, fmt.Sprintf("cron time %q: %v", hm, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ParseClock parses an "HH:MM" trigger time.
func ParseClock(hm string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(hm, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("want HH:MM")
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("out of range")
	}
	return hour, minute, nil
}
