package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/neontype/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Game.Words != nil || cfg.Tuning.DrainMS != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[game]
source = "words"
lang = "de"
words = 40
caps = 0.25
store = "json"

[tuning]
drain-ms = 1000
base-drain = 3.5
overdrive-ms = 7000
combo-penalty = 10
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.Source == nil || *cfg.Game.Source != "words" {
		t.Fatalf("unexpected source: %v", cfg.Game.Source)
	}
	if cfg.Game.Lang == nil || *cfg.Game.Lang != "de" {
		t.Fatalf("unexpected lang: %v", cfg.Game.Lang)
	}
	if cfg.Game.Words == nil || *cfg.Game.Words != 40 {
		t.Fatalf("unexpected words: %v", cfg.Game.Words)
	}
	if cfg.Game.PunctPct != nil {
		t.Fatalf("punct should be unset")
	}

	tuning := cfg.Tuning.Apply(model.DefaultTuning())
	if tuning.DrainInterval != time.Second {
		t.Fatalf("expected drain interval 1s, got %v", tuning.DrainInterval)
	}
	if tuning.BaseDrain != 3.5 {
		t.Fatalf("expected base drain 3.5, got %v", tuning.BaseDrain)
	}
	if tuning.OverdriveDuration != 7*time.Second {
		t.Fatalf("expected overdrive 7s, got %v", tuning.OverdriveDuration)
	}
	if tuning.ComboPenalty != 10 {
		t.Fatalf("expected penalty 10, got %d", tuning.ComboPenalty)
	}
	if tuning.MetricsInterval != model.DefaultTuning().MetricsInterval {
		t.Fatalf("unset fields must keep defaults, got %v", tuning.MetricsInterval)
	}
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game\nwords = "), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	cases := map[string]string{
		DefaultConfigPath():       filepath.Join("/cfg", "neontype", "config.toml"),
		DefaultParagraphsPath():   filepath.Join("/cfg", "neontype", "paragraphs.txt"),
		DefaultWordListPath("en"): filepath.Join("/cfg", "neontype", "wordlists", "en.txt"),
		DefaultDBPath():           filepath.Join("/data", "neontype", "neontype.db"),
		DefaultBestFilePath():     filepath.Join("/data", "neontype", "best.json"),
		DefaultWordfreqCacheDir(): filepath.Join("/data", "neontype", "wordfreq"),
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestXDGFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	if got := XDGConfigHome(); !strings.HasPrefix(got, home) {
		t.Fatalf("expected config home under %s, got %s", home, got)
	}
	if got := XDGDataHome(); got != filepath.Join(home, ".local", "share") {
		t.Fatalf("unexpected data home: %s", got)
	}
}
