// Package wordlist loads word lists and paragraph files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
)

// LoadWords reads one word per line from the provided file path, keeping
// only words accepted by filter.
func LoadWords(path string, filter FilterFunc) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	words := lo.Filter(lines, func(line string, _ int) bool {
		return filter(line)
	})
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// LoadParagraphs reads one paragraph per line. Lines starting with '#' are comments.
func LoadParagraphs(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	paragraphs := lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		if strings.HasPrefix(line, "#") {
			return "", false
		}
		return strings.Join(strings.Fields(line), " "), true
	})
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("paragraph file is empty")
	}
	return paragraphs, nil
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only file.
			_ = cerr
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
