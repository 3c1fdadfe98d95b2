package generator

import (
	"strings"
	"testing"
)

func TestParagraphSourceServesEveryParagraphBeforeRepeating(t *testing.T) {
	paragraphs := []string{"alpha beta", "gamma delta", "epsilon"}
	src, err := NewParagraphSource(NewSeeded(7), paragraphs)
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	seen := map[string]int{}
	for i := 0; i < len(paragraphs); i++ {
		batch := src.DrawWordBatch()
		if len(batch) == 0 {
			t.Fatalf("expected non-empty batch")
		}
		seen[strings.Join(batch, " ")]++
	}
	for _, p := range paragraphs {
		if seen[p] != 1 {
			t.Fatalf("expected %q once per cycle, saw %d", p, seen[p])
		}
	}
}

func TestParagraphSourceBatchIsACopy(t *testing.T) {
	src, err := NewParagraphSource(NewSeeded(1), []string{"one two"})
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	batch := src.DrawWordBatch()
	batch[0] = "changed"
	if again := src.DrawWordBatch(); again[0] != "one" {
		t.Fatalf("pool mutated through returned batch: %v", again)
	}
}

func TestParagraphSourceRejectsEmptyPool(t *testing.T) {
	if _, err := NewParagraphSource(NewSeeded(1), []string{"", "   "}); err == nil {
		t.Fatalf("expected error for empty pool")
	}
}

func TestDefaultParagraphsAreUsable(t *testing.T) {
	src, err := NewParagraphSource(NewSeeded(3), DefaultParagraphs)
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	for i := 0; i < len(DefaultParagraphs)*2; i++ {
		for _, word := range src.DrawWordBatch() {
			if word == "" {
				t.Fatalf("empty word in default pool")
			}
		}
	}
}

func TestWordListSourceBatchSize(t *testing.T) {
	src, err := NewWordListSource(NewSeeded(42), []string{"neon", "type"}, 5, 1, 1, []rune{'.'})
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	batch := src.DrawWordBatch()
	if len(batch) != 5 {
		t.Fatalf("expected 5 words, got %d", len(batch))
	}
	for _, word := range batch {
		if word != "Neon." && word != "Type." {
			t.Fatalf("expected capitalized punctuated word, got %q", word)
		}
	}
}

func TestWordListSourceValidation(t *testing.T) {
	if _, err := NewWordListSource(NewSeeded(1), nil, 5, 0, 0, nil); err == nil {
		t.Fatalf("expected error for empty word list")
	}
	if _, err := NewWordListSource(NewSeeded(1), []string{"a"}, 0, 0, 0, nil); err == nil {
		t.Fatalf("expected error for zero batch size")
	}
}
