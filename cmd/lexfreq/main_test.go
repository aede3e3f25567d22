package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/config"
)

func TestParseArgsInterleaved(t *testing.T) {
	var stderr bytes.Buffer
	o, err := parseArgs([]string{"a.txt", "-w", "3", "b.txt", "--exclude", "и", "-e", "the", "--", "-c.txt"}, &stderr)
	if err != nil {
		t.Fatalf("parseArgs() error = %v", err)
	}
	if want := []string{"a.txt", "b.txt", "-c.txt"}; !reflect.DeepEqual(o.files, want) {
		t.Errorf("files = %v, want %v", o.files, want)
	}
	if o.words != 3 {
		t.Errorf("words = %d, want 3", o.words)
	}
	if want := []string{"и", "the"}; !reflect.DeepEqual([]string(o.exclude), want) {
		t.Errorf("exclude = %v, want %v", o.exclude, want)
	}
	if !o.set["words"] || !o.set["exclude"] || o.set["filenum"] {
		t.Errorf("set = %v", o.set)
	}
}

func TestParseArgsRejectsUnknownFlag(t *testing.T) {
	var stderr bytes.Buffer
	if _, err := parseArgs([]string{"--nope"}, &stderr); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestApplyOnlyExplicitFlags(t *testing.T) {
	var stderr bytes.Buffer
	o, err := parseArgs([]string{"-l", "3", "--metrics-file", "out.prom", "-e", "x"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Analysis.MinWords = 7
	cfg.Analysis.Exclude = []string{"a"}
	o.apply(cfg)

	if cfg.Analysis.MinWords != 7 {
		t.Errorf("MinWords = %d, want 7 (not set on the command line)", cfg.Analysis.MinWords)
	}
	if cfg.Analysis.MinLength != 3 {
		t.Errorf("MinLength = %d, want 3", cfg.Analysis.MinLength)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Textfile != "out.prom" {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
	if want := []string{"a", "x"}; !reflect.DeepEqual(cfg.Analysis.Exclude, want) {
		t.Errorf("Exclude = %v, want %v", cfg.Analysis.Exclude, want)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunNoFiles(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--env-file", "", "--color", "never"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if stdout.String() != "no input files were supplied\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunReportsAndSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "hello world hello")
	b := writeFile(t, dir, "b.txt", "hello")
	missing := filepath.Join(dir, "missing.txt")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"--env-file", "", "--color", "never",
		"-w", "2", "-f", "1", "-l", "2",
		a, missing, b,
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	want := strings.Repeat("-", 60) + "\n" +
		"Word \"hello\" or its forms occur 3 times in the following files:\n" +
		a + "\n" +
		b + "\n"
	if stdout.String() != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout.String(), want)
	}
	if !strings.Contains(stderr.String(), "missing.txt") {
		t.Errorf("stderr does not name the missing file: %s", stderr.String())
	}
}

func TestRunExcludeAndMetrics(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "hello hello world world")
	b := writeFile(t, dir, "b.txt", "hello world")
	prom := filepath.Join(dir, "lexfreq.prom")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"--env-file", "", "--color", "never",
		"-f", "1", "-l", "2", "-e", "hello", "--metrics-file", prom,
		a, b,
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if strings.Contains(stdout.String(), "hello") {
		t.Errorf("excluded word reported:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "\"world\"") {
		t.Errorf("expected world in report:\n%s", stdout.String())
	}
	data, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
	if !strings.Contains(string(data), "lexfreq_files_total") {
		t.Errorf("metrics textfile missing files counter:\n%s", data)
	}
}

func TestRunInvalidThreshold(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--env-file", "", "-w", "-1", "a.txt"}, &stdout, &stderr)
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected stdout %q", stdout.String())
	}
}
