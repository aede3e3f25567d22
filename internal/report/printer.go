// Package report renders analyzer sections on the console and publishes
// them to downstream consumers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/analyzer"
)

const separatorWidth = 60

// Printer writes the report to w in "text" or "json" format.
type Printer struct {
	w       io.Writer
	format  string
	rule    *color.Color
	surface *color.Color
	amount  *color.Color
	file    *color.Color
}

// NewPrinter creates a Printer. colorMode is "auto", "always" or "never";
// "auto" follows fatih/color's terminal detection.
func NewPrinter(w io.Writer, format, colorMode string) *Printer {
	p := &Printer{
		w:       w,
		format:  format,
		rule:    color.New(color.Bold),
		surface: color.New(color.Bold, color.FgHiGreen),
		amount:  color.New(color.Bold, color.FgYellow),
		file:    color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{p.rule, p.surface, p.amount, p.file} {
		switch colorMode {
		case "always":
			c.EnableColor()
		case "never":
			c.DisableColor()
		}
	}
	return p
}

// Print writes every non-empty section.
func (p *Printer) Print(sections []analyzer.Section) error {
	if p.format == "json" {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(struct {
			Sections []analyzer.Section `json:"sections"`
		}{sections})
	}

	separator := p.rule.Sprint(strings.Repeat("-", separatorWidth))
	for _, section := range sections {
		for _, row := range section.Rows {
			if _, err := fmt.Fprintln(p.w, separator); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			if _, err := fmt.Fprintf(p.w, "Word \"%s\" or its forms occur %s in the following files:\n",
				p.surface.Sprint(row.Surface),
				p.amount.Sprintf("%d times", row.Amount),
			); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			for _, f := range row.Files {
				if _, err := fmt.Fprintln(p.w, p.file.Sprint(f)); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
			}
		}
	}
	return nil
}

// NoFiles reports that the run had nothing to read.
func (p *Printer) NoFiles() error {
	_, err := fmt.Fprintln(p.w, "no input files were supplied")
	return err
}
