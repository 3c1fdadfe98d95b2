// Package main provides the CLI entrypoint for neontype.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/neontype/internal/config"
	"github.com/verte-zerg/neontype/internal/game"
	"github.com/verte-zerg/neontype/internal/generator"
	"github.com/verte-zerg/neontype/internal/model"
	"github.com/verte-zerg/neontype/internal/stats"
	"github.com/verte-zerg/neontype/internal/store"
	"github.com/verte-zerg/neontype/internal/tui"
	"github.com/verte-zerg/neontype/internal/wordlist"
)

const (
	defaultSource = model.SourceParagraphs
	defaultLang   = "en"
	defaultWords  = 30
	defaultCaps   = 0.0
	defaultPunct  = 0.0
	defaultStore  = model.StoreSQLite
	eventBuffer   = 64
)

const defaultPunctSet = ".,!?;:"

var (
	playSource     string
	playLang       string
	playParagraphs string
	playWordList   string
	playWords      int
	playCaps       float64
	playPunct      float64
	playPunctSet   string
	playStore      string

	bestReset bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "neontype",
		Short:         "Arcade typing game for the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&playStore, "store", defaultStore, "best record store (sqlite|json)")
	rootCmd.Flags().StringVar(&playSource, "source", defaultSource, "word source (paragraphs|words)")
	rootCmd.Flags().StringVar(&playLang, "lang", defaultLang, "word list language (words source)")
	rootCmd.Flags().StringVar(&playParagraphs, "paragraphs", "", "paragraph file, one paragraph per line")
	rootCmd.Flags().StringVar(&playWordList, "wordlist", "", "word list file, one word per line")
	rootCmd.Flags().IntVar(&playWords, "words", defaultWords, "words per batch (words source)")
	rootCmd.Flags().Float64Var(&playCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&playPunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&playPunctSet, "punct-set", defaultPunctSet, "punctuation set")

	rootCmd.AddCommand(newBestCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWordlistCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveConfig(cmd, fileCfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}

	source, err := buildSource(cfg)
	if err != nil {
		return err
	}
	st, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close store: %v\n", cerr)
		}
	}()

	engine, err := game.New(source, st, game.WithTuning(cfg.Tuning))
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.Run(ctx)

	events, unsubscribe := engine.Subscribe(eventBuffer)
	defer unsubscribe()

	ui := tui.NewModel(ctx, engine, events, cfg.Tuning)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	cancel()
	<-engine.Done()
	if err := ui.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("game stopped: %w", err)
	}
	return nil
}

func resolveConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.Config {
	g := fileCfg.Game
	applyStringConfig(cmd, "source", &playSource, g.Source)
	applyStringConfig(cmd, "lang", &playLang, g.Lang)
	applyStringConfig(cmd, "paragraphs", &playParagraphs, g.Paragraphs)
	applyStringConfig(cmd, "wordlist", &playWordList, g.WordList)
	applyIntConfig(cmd, "words", &playWords, g.Words)
	applyFloatConfig(cmd, "caps", &playCaps, g.CapsPct)
	applyFloatConfig(cmd, "punct", &playPunct, g.PunctPct)
	applyStringConfig(cmd, "punct-set", &playPunctSet, g.PunctSet)
	applyStringConfig(cmd, "store", &playStore, g.Store)

	return model.Config{
		Source:         strings.ToLower(strings.TrimSpace(playSource)),
		Lang:           playLang,
		ParagraphsPath: playParagraphs,
		WordListPath:   playWordList,
		Words:          playWords,
		CapsPct:        playCaps,
		PunctPct:       playPunct,
		PunctSet:       playPunctSet,
		Store:          strings.ToLower(strings.TrimSpace(playStore)),
		Tuning:         fileCfg.Tuning.Apply(model.DefaultTuning()),
	}
}

// buildSource picks the word source. A missing default paragraph file falls
// back to the built-in pool; an explicit path must exist.
func buildSource(cfg model.Config) (game.WordSource, error) {
	gen := generator.New()
	switch cfg.Source {
	case model.SourceWords:
		path := cfg.WordListPath
		if path == "" {
			path = config.DefaultWordListPath(cfg.Lang)
		}
		words, err := wordlist.LoadWords(path, wordlist.FilterForLang(cfg.Lang))
		if err != nil {
			return nil, wordListLoadError(cfg.Lang, path, err)
		}
		src, err := generator.NewWordListSource(gen, words, cfg.Words, cfg.CapsPct, cfg.PunctPct, []rune(cfg.PunctSet))
		if err != nil {
			return nil, fmt.Errorf("failed to build word source: %w", err)
		}
		return src, nil
	default:
		paragraphs := generator.DefaultParagraphs
		path := cfg.ParagraphsPath
		if path == "" {
			path = config.DefaultParagraphsPath()
			if _, err := os.Stat(path); err != nil {
				path = ""
			}
		}
		if path != "" {
			loaded, err := wordlist.LoadParagraphs(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load paragraphs from %s: %w", path, err)
			}
			paragraphs = loaded
		}
		src, err := generator.NewParagraphSource(gen, paragraphs)
		if err != nil {
			return nil, fmt.Errorf("failed to build paragraph source: %w", err)
		}
		return src, nil
	}
}

type bestStore interface {
	game.BestStore
	DeleteBest(ctx context.Context) error
	Close() error
}

func openStore(kind string) (bestStore, error) {
	switch kind {
	case model.StoreJSON:
		st, err := store.NewFileStore(config.DefaultBestFilePath())
		if err != nil {
			return nil, fmt.Errorf("failed to open best record file: %w", err)
		}
		return st, nil
	default:
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		return st, nil
	}
}

func newBestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "best",
		Short: "Show the personal best",
		Args:  cobra.NoArgs,
		RunE:  runBestCmd,
	}
	cmd.Flags().BoolVar(&bestReset, "reset", false, "delete the stored personal best")
	return cmd
}

func runBestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "store", &playStore, fileCfg.Game.Store)
	kind := strings.ToLower(strings.TrimSpace(playStore))
	if err := validateStore(kind); err != nil {
		return err
	}

	st, err := openStore(kind)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close store: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if bestReset {
		if err := st.DeleteBest(ctx); err != nil {
			return fmt.Errorf("failed to reset best record: %w", err)
		}
		logErrln("Personal best cleared.")
		return nil
	}
	rec, ok, err := st.ReadBest(ctx)
	if err != nil {
		return fmt.Errorf("failed to read best record: %w", err)
	}
	return stats.RenderBest(cmd.OutOrStdout(), rec, ok)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	t := model.DefaultTuning()
	return fmt.Sprintf(`# neontype configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# source = %q        # Word source: paragraphs or words
# lang = %q                  # Word list language (words source)
# paragraphs = ""              # Paragraph file (default: built-in pool)
# wordlist = ""                # Word list file (default: wordlists/<lang>.txt)
# words = %d                   # Words per batch (words source)
# caps = %.2f                # Probability of capitalized first letter (0-1)
# punct = %.2f               # Punctuation probability per word (0-1)
# punct-set = %q         # Punctuation set
# store = %q             # Best record store: sqlite or json

[tuning]
# metrics-ms = %d             # Metrics refresh interval
# drain-ms = %d              # Health drain interval
# base-drain = %.1f            # Health lost per drain at level 1
# level-drain = %.1f           # Extra drain per level above 1
# max-health = %.1f          # Health gauge size (at most 100)
# health-restore = %.1f        # Health gained per completed word
# combo-fill = %d              # Combo meter gained per completed word
# combo-penalty = %d          # Combo meter lost per error
# overdrive-ms = %d          # Overdrive duration
# overdrive-landing = %d      # Combo meter after overdrive ends
# level-block = %d            # Words per level
# milestone-every = %d        # Combo milestone interval
`,
		defaultSource,
		defaultLang,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultStore,
		t.MetricsInterval.Milliseconds(),
		t.DrainInterval.Milliseconds(),
		t.BaseDrain,
		t.LevelDrainIncrement,
		t.MaxHealth,
		t.HealthRestore,
		t.ComboFill,
		t.ComboPenalty,
		t.OverdriveDuration.Milliseconds(),
		t.OverdriveLanding,
		t.LevelBlock,
		t.MilestoneEvery,
	)
}

func validateConfig(cfg model.Config) error {
	switch cfg.Source {
	case model.SourceParagraphs, model.SourceWords:
	default:
		return fmt.Errorf("--source must be %q or %q", model.SourceParagraphs, model.SourceWords)
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	if err := validateStore(cfg.Store); err != nil {
		return err
	}
	if err := cfg.Tuning.Validate(); err != nil {
		return fmt.Errorf("invalid [tuning] config: %w", err)
	}
	return nil
}

func validateStore(kind string) error {
	switch kind {
	case model.StoreSQLite, model.StoreJSON:
		return nil
	default:
		return fmt.Errorf("--store must be %q or %q", model.StoreSQLite, model.StoreJSON)
	}
}

func wordListLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		fmt.Sprintf("language %q not found", lang),
		fmt.Sprintf("Download: neontype wordlist %s", lang),
		"Or use your own file: neontype --source words --wordlist <file>",
		"Or play the built-in paragraphs: neontype --source paragraphs",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
