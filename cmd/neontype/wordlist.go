package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/neontype/internal/config"
	"github.com/verte-zerg/neontype/internal/wordfreq"
)

const defaultWordListSize = 10000

var (
	wordlistSize  int
	wordlistForce bool
)

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist [lang...|all]",
		Short: "Download word lists for the words source",
		Long: "Download the wordfreq dataset and write the most frequent words for each\n" +
			"language to the default word list path used by --source words --lang <lang>.",
		RunE: runWordlistCmd,
	}
	cmd.Flags().IntVar(&wordlistSize, "size", defaultWordListSize, "number of words per list")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite existing word lists")
	return cmd
}

func runWordlistCmd(cmd *cobra.Command, args []string) error {
	if wordlistSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}

	logErrln("Fetching wordfreq metadata...")
	wheel, err := wordfreq.NewFetcher(config.DefaultWordfreqCacheDir()).Latest(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		logErrf("Using cached wheel %s\n", wheel.Filename)
	} else {
		logErrf("Downloaded wheel %s\n", wheel.Filename)
	}

	archive, err := wordfreq.OpenArchive(wheel.Path)
	if err != nil {
		return err
	}
	defer func() {
		_ = archive.Close()
	}()
	return generateWordLists(archive, args, config.DefaultWordListDir(), wordlistSize, wordlistForce)
}

// generateWordLists writes <outDir>/<lang>.txt for each requested language.
// With "all", languages that yield no usable words are skipped.
func generateWordLists(archive *wordfreq.Archive, args []string, outDir string, size int, force bool) error {
	langs, all, err := resolveWordlistLangs(args, archive.Languages())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	written := 0
	for _, lang := range langs {
		outPath := filepath.Join(outDir, lang+".txt")
		if !force {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("word list already exists: %s (use --force to overwrite)", outPath)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to stat word list: %w", err)
			}
		}

		listSize, ok := archive.PickSize(lang)
		if !ok {
			return fmt.Errorf("no word list available for %s", lang)
		}
		words, err := archive.Words(lang, listSize, size)
		if err != nil {
			if all {
				logErrf("Skipping %s: %v\n", lang, err)
				continue
			}
			return fmt.Errorf("failed to extract %s word list: %w", lang, err)
		}
		if err := writeWordList(outPath, words); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		written++
		logErrf("Wrote %s (%d words, %s list)\n", outPath, len(words), listSize)
	}
	if written == 0 {
		return fmt.Errorf("no word lists written")
	}

	if err := archive.WriteAttribution(outDir); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	return nil
}

func resolveWordlistLangs(args, available []string) ([]string, bool, error) {
	requested := lo.Uniq(lo.FilterMap(args, func(arg string, _ int) (string, bool) {
		arg = strings.ToLower(strings.TrimSpace(arg))
		return arg, arg != ""
	}))
	if len(requested) == 0 {
		requested = []string{defaultLang}
	}
	if lo.Contains(requested, "all") {
		return append([]string(nil), available...), true, nil
	}
	if unknown := lo.Without(requested, available...); len(unknown) > 0 {
		return nil, false, fmt.Errorf("unknown language %q (available: %s)", unknown[0], strings.Join(available, ", "))
	}
	return requested, false, nil
}

func writeWordList(path string, words []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "wordlist-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp word list: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	w := bufio.NewWriter(tmp)
	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
