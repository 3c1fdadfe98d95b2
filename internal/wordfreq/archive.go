package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/verte-zerg/neontype/internal/wordlist"
)

const dataPrefix = "wordfreq/data/"

// List sizes published by wordfreq.
const (
	SizeLarge = "large"
	SizeSmall = "small"
)

const (
	minWordRunes = 2
	maxWordRunes = 20
)

// Archive is an opened wordfreq wheel.
type Archive struct {
	zr    *zip.ReadCloser
	lists map[string]map[string]*zip.File
}

// OpenArchive opens the wheel at path and indexes its frequency lists.
func OpenArchive(path string) (*Archive, error) {
	if path == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	a := &Archive{zr: zr, lists: make(map[string]map[string]*zip.File)}
	for _, f := range zr.File {
		lang, size, ok := parseListName(f.Name)
		if !ok {
			continue
		}
		if a.lists[lang] == nil {
			a.lists[lang] = make(map[string]*zip.File)
		}
		a.lists[lang][size] = f
	}
	if len(a.lists) == 0 {
		_ = zr.Close()
		return nil, fmt.Errorf("no frequency lists found in wheel")
	}
	return a, nil
}

// Close releases the underlying zip reader.
func (a *Archive) Close() error {
	return a.zr.Close()
}

// Languages returns the sorted language codes in the wheel.
func (a *Archive) Languages() []string {
	langs := lo.Keys(a.lists)
	sort.Strings(langs)
	return langs
}

// PickSize returns the preferred list size available for lang: large when
// present, otherwise small.
func (a *Archive) PickSize(lang string) (string, bool) {
	sizes := a.lists[strings.ToLower(lang)]
	for _, size := range []string{SizeLarge, SizeSmall} {
		if _, ok := sizes[size]; ok {
			return size, true
		}
	}
	return "", false
}

// Words returns up to limit typeable words for lang, most frequent first.
// Words must be letters only, 2 to 20 runes long and pass the language
// filter used at load time.
func (a *Archive) Words(lang, size string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	lang = strings.ToLower(lang)
	f, ok := a.lists[lang][size]
	if !ok {
		return nil, fmt.Errorf("no %s list for %q", size, lang)
	}
	ranked, err := readRanked(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}

	keep := wordlist.FilterForLang(lang)
	words := lo.Uniq(lo.Filter(ranked, func(w string, _ int) bool {
		n := utf8.RuneCountInString(w)
		return n >= minWordRunes && n <= maxWordRunes && lettersOnly(w) && keep(w)
	}))
	if len(words) == 0 {
		return nil, fmt.Errorf("no usable words in %s/%s", lang, size)
	}
	if len(words) > limit {
		words = words[:limit]
	}
	return words, nil
}

// License returns the package license text bundled in the wheel.
func (a *Archive) License() ([]byte, error) {
	for _, f := range a.zr.File {
		if !strings.Contains(strings.ToLower(f.Name), "license") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open license: %w", err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read license: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("license file not found in wheel")
}

var attributionText = strings.Join([]string{
	"Word lists generated from the wordfreq dataset.",
	"Source: https://github.com/rspeer/wordfreq",
	"Data license: Creative Commons Attribution-ShareAlike 4.0 International (CC BY-SA 4.0).",
	"Changes were made: filtered to alphabetic words and truncated to the requested size.",
	"Includes data from Google Books Ngrams: https://books.google.com/ngrams",
	"Includes data from the Leeds Internet Corpus: https://corpus.leeds.ac.uk/",
	"",
}, "\n")

const dataLicenseText = "This word list is licensed under CC BY-SA 4.0.\nhttps://creativecommons.org/licenses/by-sa/4.0/\n"

// WriteAttribution writes ATTRIBUTION.txt, LICENSE.txt and DATA_LICENSE.txt
// next to the generated lists.
func (a *Archive) WriteAttribution(outDir string) error {
	license, err := a.License()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	files := map[string][]byte{
		"ATTRIBUTION.txt":  []byte(attributionText),
		"LICENSE.txt":      license,
		"DATA_LICENSE.txt": []byte(dataLicenseText),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(outDir, name), data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

// parseListName maps "wordfreq/data/large_pt-br.msgpack.gz" to ("pt-br", "large").
func parseListName(name string) (lang, size string, ok bool) {
	name = strings.ToLower(name)
	base, found := strings.CutPrefix(name, dataPrefix)
	if !found {
		return "", "", false
	}
	base, found = strings.CutSuffix(base, ".msgpack.gz")
	if !found {
		base, found = strings.CutSuffix(base, ".msgpack")
		if !found {
			return "", "", false
		}
	}
	for _, s := range []string{SizeLarge, SizeSmall} {
		if lang, found := strings.CutPrefix(base, s+"_"); found && lang != "" {
			return lang, s, true
		}
	}
	return "", "", false
}

func readRanked(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = rc
	if strings.HasSuffix(strings.ToLower(f.Name), ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}
	return decodeBuckets(r)
}

func lettersOnly(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return word != ""
}
