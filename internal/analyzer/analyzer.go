// Package analyzer runs the processing pass of a lexfreq run: it routes the
// tokens of every document to a per-language frequency dictionary and turns
// the dictionaries into report sections.
package analyzer

import (
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/exclusion"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/freqdict"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/stemmer"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/metrics"
)

// Row is a report line: a stem that passed the thresholds together with the
// first surface form seen for it.
type Row struct {
	Stem    string   `json:"stem"`
	Surface string   `json:"surface"`
	Amount  int      `json:"amount"`
	Files   []string `json:"files"`
}

// Section holds the rows of one language bucket.
type Section struct {
	Language tokenizer.Language `json:"language"`
	Rows     []Row              `json:"rows"`
}

// DocumentStats summarises what AddDocument did with one document.
type DocumentStats struct {
	Tokens   int
	Excluded int
}

// Analyzer owns the per-language dictionaries and the shared stem to
// surface-form map for one run. It is not safe for concurrent use.
type Analyzer struct {
	stemmers  map[tokenizer.Language]stemmer.Stemmer
	matcher   *exclusion.Matcher
	dicts     map[tokenizer.Language]*freqdict.Dictionary
	unstemmed map[string]string
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// New creates an Analyzer. matcher and m may be nil.
func New(russian, english stemmer.Stemmer, matcher *exclusion.Matcher, m *metrics.Metrics) *Analyzer {
	if matcher == nil {
		matcher = exclusion.NewMatcher(nil)
	}
	return &Analyzer{
		stemmers: map[tokenizer.Language]stemmer.Stemmer{
			tokenizer.Russian: russian,
			tokenizer.English: english,
		},
		matcher: matcher,
		dicts: map[tokenizer.Language]*freqdict.Dictionary{
			tokenizer.Russian: freqdict.New(),
			tokenizer.English: freqdict.New(),
		},
		unstemmed: make(map[string]string),
		metrics:   m,
		logger:    logger.WithComponent("analyzer"),
	}
}

// AddDocument tokenizes text and adds every non-excluded token to its
// language dictionary under file. Russian-bucket tokens are processed before
// English-bucket tokens, each in document order.
func (a *Analyzer) AddDocument(file, text string) DocumentStats {
	buckets := make(map[tokenizer.Language][]string, len(tokenizer.Languages))
	for _, tok := range tokenizer.Tokenize(text) {
		if tok == "" {
			continue
		}
		lang := tokenizer.Classify(tok)
		buckets[lang] = append(buckets[lang], tok)
	}

	var stats DocumentStats
	for _, lang := range tokenizer.Languages {
		s := a.stemmers[lang]
		dict := a.dicts[lang]
		var added, excluded int
		for _, tok := range buckets[lang] {
			stem := s.Stem(tok)
			if a.matcher.ExcludedStem(lang, s, stem) {
				excluded++
				continue
			}
			dict.Add(stem, file)
			if _, seen := a.unstemmed[stem]; !seen {
				a.unstemmed[stem] = tok
			}
			added++
		}
		stats.Tokens += added
		stats.Excluded += excluded
		if a.metrics != nil {
			a.metrics.TokensTotal.WithLabelValues(lang.String()).Add(float64(added))
			a.metrics.TokensExcludedTotal.WithLabelValues(lang.String()).Add(float64(excluded))
		}
	}
	a.logger.Debug("document analyzed", "file", file, "tokens", stats.Tokens, "excluded", stats.Excluded)
	return stats
}

// Dictionary returns the frequency dictionary of lang.
func (a *Analyzer) Dictionary(lang tokenizer.Language) *freqdict.Dictionary {
	return a.dicts[lang]
}

// Surface returns the first token recorded for stem.
func (a *Analyzer) Surface(stem string) (string, bool) {
	s, ok := a.unstemmed[stem]
	return s, ok
}

// Report filters and sorts every dictionary with th. Sections come in
// tokenizer.Languages order and may be empty. A stem without a surface form
// is an internal fault and returns an error wrapping errors.ErrInvariant.
func (a *Analyzer) Report(th freqdict.Thresholds) ([]Section, error) {
	sections := make([]Section, 0, len(tokenizer.Languages))
	for _, lang := range tokenizer.Languages {
		dict := a.dicts[lang]
		filtered := dict.SortAndFilter(th)
		rows := make([]Row, 0, len(filtered))
		for _, r := range filtered {
			surface, ok := a.unstemmed[r.Stem]
			if !ok {
				return nil, fmt.Errorf("%w: %s stem %q has no surface form", apperrors.ErrInvariant, lang, r.Stem)
			}
			rows = append(rows, Row{
				Stem:    r.Stem,
				Surface: surface,
				Amount:  r.Amount,
				Files:   r.Files,
			})
		}
		if a.metrics != nil {
			a.metrics.DistinctStems.WithLabelValues(lang.String()).Set(float64(dict.Len()))
			a.metrics.ReportRows.WithLabelValues(lang.String()).Set(float64(len(rows)))
		}
		a.logger.Debug("dictionary ranked", "language", lang, "stems", dict.Len(), "rows", len(rows))
		sections = append(sections, Section{Language: lang, Rows: rows})
	}
	return sections, nil
}
