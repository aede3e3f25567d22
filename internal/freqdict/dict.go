package freqdict

import (
	"sort"

	"github.com/rivo/uniseg"
)

// Entry is the per-stem statistics of one language bucket.
type Entry struct {
	Amount      int
	ContainedIn map[string]struct{}
}

// Row is one stem that passed SortAndFilter. Files are sorted.
type Row struct {
	Stem   string
	Amount int
	Files  []string
}

// Thresholds are the report filters. MinFiles and MinLength are strict
// lower bounds, MinAmount is inclusive.
type Thresholds struct {
	MinAmount int
	MinFiles  int
	MinLength int
}

// Dictionary maps stems to their Entry. Entries are only ever added to.
type Dictionary struct {
	entries map[string]*Entry
}

func New() *Dictionary {
	return &Dictionary{
		entries: make(map[string]*Entry),
	}
}

// Add records one occurrence of stem in file and returns the stem's new
// amount.
func (d *Dictionary) Add(stem, file string) int {
	e, exists := d.entries[stem]
	if !exists {
		e = &Entry{ContainedIn: make(map[string]struct{}, 1)}
		d.entries[stem] = e
	}
	e.Amount++
	e.ContainedIn[file] = struct{}{}
	return e.Amount
}

// Lookup returns a copy of the entry for stem.
func (d *Dictionary) Lookup(stem string) (Entry, bool) {
	e, exists := d.entries[stem]
	if !exists {
		return Entry{}, false
	}
	files := make(map[string]struct{}, len(e.ContainedIn))
	for f := range e.ContainedIn {
		files[f] = struct{}{}
	}
	return Entry{Amount: e.Amount, ContainedIn: files}, true
}

// Len returns the number of distinct stems.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// SortAndFilter returns every entry with more than th.MinFiles files, at
// least th.MinAmount occurrences and a stem longer than th.MinLength
// grapheme clusters, by amount descending. Equal amounts are ordered by stem.
func (d *Dictionary) SortAndFilter(th Thresholds) []Row {
	rows := make([]Row, 0)
	for stem, e := range d.entries {
		if len(e.ContainedIn) <= th.MinFiles || e.Amount < th.MinAmount {
			continue
		}
		if uniseg.GraphemeClusterCount(stem) <= th.MinLength {
			continue
		}
		files := make([]string, 0, len(e.ContainedIn))
		for f := range e.ContainedIn {
			files = append(files, f)
		}
		sort.Strings(files)
		rows = append(rows, Row{Stem: stem, Amount: e.Amount, Files: files})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Stem < rows[j].Stem
	})
	return rows
}
