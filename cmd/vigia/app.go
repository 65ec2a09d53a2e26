package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/brasslaw/vigia/internal/comunica"
	"github.com/brasslaw/vigia/internal/config"
	"github.com/brasslaw/vigia/internal/datajud"
	"github.com/brasslaw/vigia/internal/notify"
	"github.com/brasslaw/vigia/internal/store"
	"github.com/brasslaw/vigia/internal/updater"
)

// loadConfig reads the YAML config file. A missing file is not an
// error: the built-in defaults describe the production deployment.
func loadConfig(path string) (*config.Config, error) {
	godotenv.Load()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildApp wires the store, the court clients and the updater from a
// loaded config.
func buildApp(cfg *config.Config) (*store.Store, *updater.Updater, error) {
	s, err := store.Open(cfg.DBPath, cfg.ReportDir)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Migrate(); err != nil {
		return nil, nil, err
	}

	index := datajud.New(datajud.Opts{APIKey: cfg.DataJud.APIKey})
	feed := comunica.New(comunica.Opts{})

	var notifier updater.Notifier
	if cfg.Slack.WebhookURL != "" {
		notifier = notify.NewSlack(cfg.Slack.WebhookURL, cfg.Slack.Channel)
	}

	u := updater.New(updater.Opts{
		Store:         s,
		Index:         index,
		Feed:          feed,
		Parser:        comunica.NewParser(cfg.WatchNames),
		Notifier:      notifier,
		Court:         cfg.DataJud.Court,
		FallbackCourt: cfg.DataJud.FallbackCourt,
		Delay:         time.Duration(cfg.DataJud.DelayMS) * time.Millisecond,
		FeedDelay:     time.Duration(cfg.Comunica.DelayMS) * time.Millisecond,
	})
	return s, u, nil
}

// appFromConfig is the common entry for commands that need the full wiring.
func appFromConfig(configPath string) (*config.Config, *store.Store, *updater.Updater, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	s, u, err := buildApp(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("vigia: %w", err)
	}
	return cfg, s, u, nil
}
