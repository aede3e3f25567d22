// Package stemmer adapts the Snowball Russian and English stemmers to a
// single-method interface so the aggregation code can be driven by fakes.
package stemmer

import (
	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/russian"
)

// Stemmer maps a word to its language-specific root. Implementations are
// pure: any input, including the empty string, yields some output.
type Stemmer interface {
	Stem(word string) string
}

// Func adapts an ordinary function to Stemmer.
type Func func(word string) string

func (f Func) Stem(word string) string { return f(word) }

// Identity returns words unchanged.
var Identity = Func(func(word string) string { return word })

type russianStemmer struct{}

// Russian returns the Snowball Russian stemmer. Stop words are stemmed like
// any other word.
func Russian() Stemmer { return russianStemmer{} }

func (russianStemmer) Stem(word string) string {
	return russian.Stem(word, true)
}

type englishStemmer struct{}

// English returns the Snowball English (Porter2) stemmer. Stop words are
// stemmed like any other word.
func English() Stemmer { return englishStemmer{} }

func (englishStemmer) Stem(word string) string {
	return english.Stem(word, true)
}
