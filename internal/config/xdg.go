// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appDir = "neontype"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}

// DefaultParagraphsPath returns where a custom paragraph pool is looked up.
func DefaultParagraphsPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "paragraphs.txt")
}

// DefaultWordListDir returns the directory generated word lists live in.
func DefaultWordListDir() string {
	return filepath.Join(XDGConfigHome(), appDir, "wordlists")
}

// DefaultWordListPath builds the default word list path for a language.
func DefaultWordListPath(lang string) string {
	return filepath.Join(DefaultWordListDir(), lang+".txt")
}

// DefaultWordfreqCacheDir returns where downloaded wordfreq wheels are cached.
func DefaultWordfreqCacheDir() string {
	return filepath.Join(XDGDataHome(), appDir, "wordfreq")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appDir, "neontype.db")
}

// DefaultBestFilePath returns the default path of the JSON best record.
func DefaultBestFilePath() string {
	return filepath.Join(XDGDataHome(), appDir, "best.json")
}
