package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/analyzer"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/tokenizer"
)

func sampleSections() []analyzer.Section {
	return []analyzer.Section{
		{
			Language: tokenizer.Russian,
			Rows: []analyzer.Row{
				{Stem: "книг", Surface: "книгами", Amount: 3, Files: []string{"a.txt", "b.txt"}},
			},
		},
		{Language: tokenizer.English},
	}
}

func TestPrintText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "text", "never")
	if err := p.Print(sampleSections()); err != nil {
		t.Fatal(err)
	}

	want := strings.Repeat("-", 60) + "\n" +
		"Word \"книгами\" or its forms occur 3 times in the following files:\n" +
		"a.txt\n" +
		"b.txt\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestPrintEmptySections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "text", "never")
	if err := p.Print([]analyzer.Section{{Language: tokenizer.Russian}, {Language: tokenizer.English}}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestPrintColorAlways(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "text", "always")
	if err := p.Print(sampleSections()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", buf.String())
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "json", "always")
	if err := p.Print(sampleSections()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("json output must not be coloured")
	}

	var doc struct {
		Sections []struct {
			Language string         `json:"language"`
			Rows     []analyzer.Row `json:"rows"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(doc.Sections))
	}
	if doc.Sections[0].Language != "russian" || doc.Sections[1].Language != "english" {
		t.Errorf("languages = %q, %q", doc.Sections[0].Language, doc.Sections[1].Language)
	}
	if got := doc.Sections[0].Rows[0].Surface; got != "книгами" {
		t.Errorf("surface = %q, want книгами", got)
	}
}

func TestNoFiles(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, "text", "never").NoFiles(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "no input files were supplied\n" {
		t.Errorf("got %q", buf.String())
	}
}
