package exclusion

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/stemmer"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/errors"
)

// trimS strips one trailing "s", enough to exercise stem-based matching.
var trimS = stemmer.Func(func(w string) string { return strings.TrimSuffix(w, "s") })

func TestMatcherMatchesOnStems(t *testing.T) {
	m := NewMatcher([]string{"books", "car"})

	tests := []struct {
		token string
		want  bool
	}{
		{"book", true},
		{"books", true},
		{"cars", true},
		{"cart", false},
		{"bookshelf", false},
	}
	for _, tt := range tests {
		if got := m.Excluded(tokenizer.English, trimS, tt.token); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestMatcherUsesTheTokensStemmer(t *testing.T) {
	// The English word list is also stemmed by the Russian stemmer; a match
	// happens only if that stemmer yields equal strings.
	m := NewMatcher([]string{"running"})
	if !m.Excluded(tokenizer.English, stemmer.English(), "runs") {
		t.Error("english stems of runs/running should match")
	}
	if m.Excluded(tokenizer.Russian, stemmer.Russian(), "книга") {
		t.Error("russian token should not match an unrelated english word")
	}

	ru := NewMatcher([]string{"книгами"})
	if !ru.Excluded(tokenizer.Russian, stemmer.Russian(), "книга") {
		t.Error("russian stems of книга/книгами should match")
	}
}

func TestMatcherEmpty(t *testing.T) {
	m := NewMatcher(nil)
	if m.Excluded(tokenizer.English, stemmer.Identity, "") {
		t.Error("empty matcher excluded a token")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d", m.Len())
	}
}

func TestCombine(t *testing.T) {
	got := Combine([]string{"a", "b"}, nil, []string{"c"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Combine = %v, want %v", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.txt")
	content := "первый\r\nsecond\n\nthird\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	want := []string{"первый", "second", "", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadFile = %q, want %q", got, want)
	}
}

func TestLoadFileSkipsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.txt")
	if err := os.WriteFile(path, []byte("good\n\xff\xfe\nalso\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if want := []string{"good", "also"}; !reflect.DeepEqual(got, want) {
		t.Errorf("LoadFile = %q, want %q", got, want)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, apperrors.ErrExcludeFile) {
		t.Fatalf("error = %v, want ErrExcludeFile", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped ErrNotExist", err)
	}
}
