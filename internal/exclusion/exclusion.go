// Package exclusion decides which tokens are left out of the frequency
// dictionaries. Matching is done on stems, not on literal words.
package exclusion

import (
	"bufio"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/stemmer"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/errors"
)

// Matcher holds a flat list of excluded words. The list is not split by
// language: every word is stemmed by whichever stemmer is asked about it.
type Matcher struct {
	words []string
	stems map[tokenizer.Language]map[string]struct{}
}

func NewMatcher(words []string) *Matcher {
	return &Matcher{
		words: words,
		stems: make(map[tokenizer.Language]map[string]struct{}),
	}
}

// Len returns the number of excluded words.
func (m *Matcher) Len() int {
	return len(m.words)
}

// Excluded reports whether token, stemmed with s, matches the stem of any
// excluded word under the same stemmer.
func (m *Matcher) Excluded(lang tokenizer.Language, s stemmer.Stemmer, token string) bool {
	return m.ExcludedStem(lang, s, s.Stem(token))
}

// ExcludedStem is Excluded for callers that already hold the token's stem.
// s must be the stemmer that produced stem; it must not change between calls
// for the same lang since the excluded stems are computed once per lang.
func (m *Matcher) ExcludedStem(lang tokenizer.Language, s stemmer.Stemmer, stem string) bool {
	if len(m.words) == 0 {
		return false
	}
	set, ok := m.stems[lang]
	if !ok {
		set = make(map[string]struct{}, len(m.words))
		for _, w := range m.words {
			set[s.Stem(w)] = struct{}{}
		}
		m.stems[lang] = set
	}
	_, hit := set[stem]
	return hit
}

// Combine concatenates the word lists in order. File-based words come first,
// literal words second.
func Combine(sources ...[]string) []string {
	var n int
	for _, src := range sources {
		n += len(src)
	}
	out := make([]string, 0, n)
	for _, src := range sources {
		out = append(out, src...)
	}
	return out
}

// LoadFile reads one excluded word per line. Line terminators (\n or \r\n)
// are stripped and lines that are not valid UTF-8 are skipped.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", apperrors.ErrExcludeFile, path, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !utf8.ValidString(line) {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return words, fmt.Errorf("%w %s: %w", apperrors.ErrExcludeFile, path, err)
	}
	return words, nil
}
