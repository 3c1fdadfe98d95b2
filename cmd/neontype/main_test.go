package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/neontype/internal/config"
	"github.com/verte-zerg/neontype/internal/generator"
	"github.com/verte-zerg/neontype/internal/model"
)

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--words", "12"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	fileCfg := config.FileConfig{
		Game: config.GameConfig{
			Source: strPtr("words"),
			Words:  intPtr(99),
			Store:  strPtr("JSON"),
		},
		Tuning: config.TuningConfig{DrainMS: intPtr(900)},
	}
	cfg := resolveConfig(cmd, fileCfg)
	if cfg.Words != 12 {
		t.Fatalf("flag must win over config, got %d", cfg.Words)
	}
	if cfg.Source != model.SourceWords {
		t.Fatalf("expected source from config, got %q", cfg.Source)
	}
	if cfg.Store != model.StoreJSON {
		t.Fatalf("expected normalized store, got %q", cfg.Store)
	}
	if cfg.Tuning.DrainInterval != 900*time.Millisecond {
		t.Fatalf("expected tuning override, got %v", cfg.Tuning.DrainInterval)
	}
}

func TestValidateConfig(t *testing.T) {
	base := model.Config{
		Source:   model.SourceParagraphs,
		Words:    10,
		PunctSet: ".",
		Store:    model.StoreSQLite,
		Tuning:   model.DefaultTuning(),
	}
	if err := validateConfig(base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]func(*model.Config){
		"--source":  func(c *model.Config) { c.Source = "poems" },
		"--words":   func(c *model.Config) { c.Words = 0 },
		"--caps":    func(c *model.Config) { c.CapsPct = 1.5 },
		"--punct":   func(c *model.Config) { c.PunctPct = -0.1 },
		"--store":   func(c *model.Config) { c.Store = "redis" },
		"[tuning]":  func(c *model.Config) { c.Tuning.DrainInterval = 0 },
		"punct-set": func(c *model.Config) { c.PunctPct = 0.5; c.PunctSet = "" },
	}
	for want, mutate := range cases {
		cfg := base
		mutate(&cfg)
		err := validateConfig(cfg)
		if err == nil {
			t.Fatalf("expected error mentioning %s", want)
		}
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error mentioning %s, got %v", want, err)
		}
	}
}

func TestBuildSourceFallsBackToBuiltInParagraphs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	src, err := buildSource(model.Config{Source: model.SourceParagraphs})
	if err != nil {
		t.Fatalf("build source: %v", err)
	}
	batch := strings.Join(src.DrawWordBatch(), " ")
	found := false
	for _, p := range generator.DefaultParagraphs {
		if strings.Join(strings.Fields(p), " ") == batch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a built-in paragraph, got %q", batch)
	}
}

func TestBuildSourceWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\nGamma\n"), 0o600); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	src, err := buildSource(model.Config{
		Source:       model.SourceWords,
		Lang:         "en",
		WordListPath: path,
		Words:        5,
	})
	if err != nil {
		t.Fatalf("build source: %v", err)
	}
	batch := src.DrawWordBatch()
	if len(batch) != 5 {
		t.Fatalf("expected 5 words, got %d", len(batch))
	}
	for _, w := range batch {
		if w != "alpha" && w != "beta" {
			t.Fatalf("unexpected word %q", w)
		}
	}
}

func TestBuildSourceMissingWordList(t *testing.T) {
	_, err := buildSource(model.Config{
		Source:       model.SourceWords,
		Lang:         "en",
		WordListPath: filepath.Join(t.TempDir(), "missing.txt"),
		Words:        5,
	})
	if err == nil || !strings.Contains(err.Error(), "expected word list at") {
		t.Fatalf("expected load hint, got %v", err)
	}
	if !strings.Contains(err.Error(), "neontype wordlist en") {
		t.Fatalf("expected download hint, got %v", err)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("template must be valid TOML: %v", err)
	}
	if cfg.Game.Words != nil {
		t.Fatalf("template values must be commented out")
	}
	uncommented := strings.Join(keepAssignments(defaultConfigTemplate()), "\n")
	if _, err := toml.Decode(uncommented, &cfg); err != nil {
		t.Fatalf("uncommented template must be valid TOML: %v", err)
	}
	if cfg.Game.Words == nil || *cfg.Game.Words != defaultWords {
		t.Fatalf("expected words %d from template", defaultWords)
	}
	if cfg.Tuning.DrainMS == nil || *cfg.Tuning.DrainMS != 1500 {
		t.Fatalf("expected drain-ms 1500 from template")
	}
}

// keepAssignments uncomments the template, dropping prose lines and trailing comments.
func keepAssignments(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimPrefix(strings.TrimSpace(line), "# ")
		if idx := strings.Index(line, " #"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if strings.HasPrefix(line, "[") || strings.Contains(line, " = ") {
			out = append(out, line)
		}
	}
	return out
}

func TestValidateConfigRejectsOversizedHealthGauge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[tuning]\nmax-health = 200.0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg := resolveConfig(newRootCmd(), fileCfg)
	err = validateConfig(cfg)
	if err == nil || !strings.Contains(err.Error(), "max health") {
		t.Fatalf("expected max health rejection, got %v", err)
	}
}
