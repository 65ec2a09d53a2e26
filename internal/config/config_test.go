package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
port: 8090
db_path: /var/lib/vigia/casos.db
report_dir: /var/lib/vigia/relatorios

datajud:
  api_key: chave-teste
  court: trt15
  fallback_court: tst
  delay_ms: 250

comunica:
  delay_ms: 4000

cron:
  enabled: true
  datajud: ["08:00", "20:00"]
  comunica: ["09:30"]

slack:
  webhook_url: https://hooks.slack.com/services/T0/B0/x
  channel: "#juridico"

watch_names: ["MARIA", "JOAO"]
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8090 {
		t.Errorf("Port = %d, want 8090", cfg.Port)
	}
	if cfg.DBPath != "/var/lib/vigia/casos.db" {
		t.Errorf("DBPath = %q, want /var/lib/vigia/casos.db", cfg.DBPath)
	}
	if cfg.DataJud.APIKey != "chave-teste" {
		t.Errorf("DataJud.APIKey = %q, want chave-teste", cfg.DataJud.APIKey)
	}
	if cfg.DataJud.Court != "trt15" {
		t.Errorf("DataJud.Court = %q, want trt15", cfg.DataJud.Court)
	}
	if cfg.DataJud.DelayMS != 250 {
		t.Errorf("DataJud.DelayMS = %d, want 250", cfg.DataJud.DelayMS)
	}
	if cfg.Comunica.DelayMS != 4000 {
		t.Errorf("Comunica.DelayMS = %d, want 4000", cfg.Comunica.DelayMS)
	}
	if !cfg.Cron.Enabled {
		t.Error("Cron.Enabled = false, want true")
	}
	if len(cfg.Cron.DataJud) != 2 || cfg.Cron.DataJud[0] != "08:00" {
		t.Errorf("Cron.DataJud = %v", cfg.Cron.DataJud)
	}
	if cfg.Slack.WebhookURL == "" {
		t.Error("Slack.WebhookURL empty")
	}
	if len(cfg.WatchNames) != 2 || cfg.WatchNames[0] != "MARIA" {
		t.Errorf("WatchNames = %v", cfg.WatchNames)
	}
}

func TestParse_EmptyConfig_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 3100 {
		t.Errorf("Port = %d, want 3100 (default)", cfg.Port)
	}
	if cfg.DataJud.Court != "trt2" {
		t.Errorf("DataJud.Court = %q, want trt2 (default)", cfg.DataJud.Court)
	}
	if cfg.DataJud.FallbackCourt != "tst" {
		t.Errorf("DataJud.FallbackCourt = %q, want tst (default)", cfg.DataJud.FallbackCourt)
	}
	if cfg.DataJud.DelayMS != 500 {
		t.Errorf("DataJud.DelayMS = %d, want 500 (default)", cfg.DataJud.DelayMS)
	}
	if cfg.Comunica.DelayMS != 3200 {
		t.Errorf("Comunica.DelayMS = %d, want 3200 (default)", cfg.Comunica.DelayMS)
	}
	if len(cfg.Cron.DataJud) != 2 || len(cfg.Cron.Comunica) != 4 {
		t.Errorf("Cron defaults = %v / %v", cfg.Cron.DataJud, cfg.Cron.Comunica)
	}
	if len(cfg.WatchNames) != 3 || cfg.WatchNames[0] != "RAPHAEL" {
		t.Errorf("WatchNames = %v", cfg.WatchNames)
	}
}

func TestParse_APIKeyFromEnv(t *testing.T) {
	t.Setenv("DATAJUD_API_KEY", "env-chave")
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataJud.APIKey != "env-chave" {
		t.Errorf("DataJud.APIKey = %q, want env-chave", cfg.DataJud.APIKey)
	}
}

func TestParse_InvalidCronTime(t *testing.T) {
	_, err := Parse([]byte("cron:\n  datajud: [\"25:00\"]\n"))
	if err == nil {
		t.Fatal("expected error for invalid cron time")
	}
	if !strings.Contains(err.Error(), "25:00") {
		t.Errorf("error = %q, want to mention 25:00", err.Error())
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte(":::invalid"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "config: parse:") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config: parse:")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/vigia.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "config: read") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config: read")
	}
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vigia.yaml")
	if err := os.WriteFile(path, []byte("port: 4000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("Port = %d, want 4000", cfg.Port)
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("07:00")
	if err != nil || h != 7 || m != 0 {
		t.Errorf("ParseClock(07:00) = %d, %d, %v", h, m, err)
	}
	if _, _, err := ParseClock("banana"); err == nil {
		t.Error("ParseClock(banana) expected error")
	}
	if _, _, err := ParseClock("12:75"); err == nil {
		t.Error("ParseClock(12:75) expected error")
	}
}
