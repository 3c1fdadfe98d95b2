// Package generator supplies the word batches a game session types through.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate selects words uniformly and applies caps/punctuation rules.
func (g *Generator) Generate(words []string, count int, capsPct, punctPct float64, punctSet []rune) []string {
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		word := words[g.rnd.Intn(len(words))]
		word = applyCaps(g.rnd, word, capsPct)
		word = applyPunct(g.rnd, word, punctPct, punctSet)
		result = append(result, word)
	}
	return result
}

// ParagraphSource draws whole paragraphs from a shuffled pool. Every
// paragraph is served once before the pool is reshuffled.
type ParagraphSource struct {
	gen        *Generator
	paragraphs [][]string
	order      []int
	next       int
}

// NewParagraphSource builds a source from paragraphs of space-separated words.
func NewParagraphSource(gen *Generator, paragraphs []string) (*ParagraphSource, error) {
	pool := make([][]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			continue
		}
		pool = append(pool, words)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("paragraph pool is empty")
	}
	return &ParagraphSource{gen: gen, paragraphs: pool}, nil
}

// DrawWordBatch returns the words of the next paragraph.
func (s *ParagraphSource) DrawWordBatch() []string {
	if s.next >= len(s.order) {
		s.order = s.gen.rnd.Perm(len(s.paragraphs))
		s.next = 0
	}
	words := s.paragraphs[s.order[s.next]]
	s.next++
	return append([]string(nil), words...)
}

// WordListSource draws fixed-size batches of random words from a word list.
type WordListSource struct {
	gen      *Generator
	words    []string
	count    int
	capsPct  float64
	punctPct float64
	punctSet []rune
}

// NewWordListSource builds a word-list source; count is the batch size.
func NewWordListSource(gen *Generator, words []string, count int, capsPct, punctPct float64, punctSet []rune) (*WordListSource, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	if count <= 0 {
		return nil, fmt.Errorf("batch size must be > 0")
	}
	return &WordListSource{
		gen:      gen,
		words:    words,
		count:    count,
		capsPct:  capsPct,
		punctPct: punctPct,
		punctSet: punctSet,
	}, nil
}

// DrawWordBatch returns count random words.
func (s *WordListSource) DrawWordBatch() []string {
	return s.gen.Generate(s.words, s.count, s.capsPct, s.punctPct, s.punctSet)
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
