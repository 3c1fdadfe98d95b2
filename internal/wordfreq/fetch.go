// Package wordfreq builds word lists from the wordfreq frequency dataset.
// The dataset ships as a Python wheel; the wheel is cached on disk and read
// as a zip archive.
package wordfreq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DefaultEndpoint is the PyPI metadata URL for the wordfreq package.
const DefaultEndpoint = "https://pypi.org/pypi/wordfreq/json"

const fetchTimeout = 60 * time.Second

// Wheel describes a wheel file in the cache directory.
type Wheel struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

// Fetcher downloads the newest wordfreq wheel into CacheDir.
type Fetcher struct {
	Endpoint string
	CacheDir string
	Client   *http.Client
}

// NewFetcher returns a Fetcher that talks to PyPI.
func NewFetcher(cacheDir string) *Fetcher {
	return &Fetcher{
		Endpoint: DefaultEndpoint,
		CacheDir: cacheDir,
		Client:   &http.Client{Timeout: fetchTimeout},
	}
}

type releaseFile struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	PackageType string `json:"packagetype"`
}

type releaseInfo struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []releaseFile `json:"urls"`
}

// Latest resolves the current release and returns its wheel, downloading it
// unless the same filename is already cached.
func (f *Fetcher) Latest(ctx context.Context) (Wheel, error) {
	if f.CacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(f.CacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	var info releaseInfo
	if err := f.getJSON(ctx, f.Endpoint, &info); err != nil {
		return Wheel{}, err
	}
	if info.Info.Version == "" {
		return Wheel{}, fmt.Errorf("release metadata has no version")
	}
	file, ok := pickWheel(info.URLs)
	if !ok {
		return Wheel{}, fmt.Errorf("no wheel published for wordfreq %s", info.Info.Version)
	}

	wheel := Wheel{
		Version:  info.Info.Version,
		Path:     filepath.Join(f.CacheDir, filepath.Base(file.Filename)),
		Filename: file.Filename,
	}
	if _, err := os.Stat(wheel.Path); err == nil {
		wheel.Cached = true
		return wheel, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}

	if err := f.download(ctx, file.URL, wheel.Path); err != nil {
		return Wheel{}, err
	}
	return wheel, nil
}

// pickWheel prefers the pure-Python wheel and falls back to any wheel.
func pickWheel(files []releaseFile) (releaseFile, bool) {
	wheels := lo.Filter(files, func(f releaseFile, _ int) bool {
		return f.PackageType == "bdist_wheel" && f.URL != "" && f.Filename != ""
	})
	if pure, ok := lo.Find(wheels, func(f releaseFile) bool {
		return strings.HasSuffix(f.Filename, "py3-none-any.whl")
	}); ok {
		return pure, true
	}
	if len(wheels) == 0 {
		return releaseFile{}, false
	}
	return wheels[0], true
}

func (f *Fetcher) getJSON(ctx context.Context, url string, out any) error {
	body, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = body.Close()
	}()
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode release metadata: %w", err)
	}
	return nil
}

func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	body, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = body.Close()
	}()

	tmp, err := os.CreateTemp(filepath.Dir(dest), "wordfreq-*.whl")
	if err != nil {
		return fmt.Errorf("failed to create temp wheel: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := io.Copy(tmp, body); err != nil {
		return fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to move wheel into cache: %w", err)
	}
	return nil
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status from %s: %s", url, resp.Status)
	}
	return resp.Body, nil
}
