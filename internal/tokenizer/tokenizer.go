// Package tokenizer splits raw file text into candidate words and assigns
// each word to a language bucket.
package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Language identifies a language bucket.
type Language int

const (
	Russian Language = iota
	English
)

// Languages lists the buckets in processing and reporting order.
var Languages = []Language{Russian, English}

func (l Language) String() string {
	switch l {
	case Russian:
		return "russian"
	case English:
		return "english"
	default:
		return "unknown"
	}
}

func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Tokenize lower-cases text, drops every character that is neither
// alphabetic nor non-newline whitespace, and splits the remainder on the
// space character. Empty pieces are kept. Tabs and carriage returns survive
// inside tokens, while removed newlines join the words around them.
func Tokenize(text string) []string {
	filtered := strings.Map(func(r rune) rune {
		if isAlphabetic(r) || (unicode.IsSpace(r) && r != '\n') {
			return r
		}
		return -1
	}, strings.ToLower(text))
	return strings.Split(filtered, " ")
}

// Classify puts a token containing any non-ASCII byte in the Russian bucket
// and everything else in the English bucket.
func Classify(token string) Language {
	for i := 0; i < len(token); i++ {
		if token[i] >= utf8.RuneSelf {
			return Russian
		}
	}
	return English
}

// isAlphabetic matches the Unicode Alphabetic property.
func isAlphabetic(r rune) bool {
	return unicode.IsLetter(r) ||
		unicode.Is(unicode.Nl, r) ||
		unicode.Is(unicode.Other_Alphabetic, r)
}
