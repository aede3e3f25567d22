package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/analyzer"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/exclusion"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/freqdict"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/report"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/stemmer"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/metrics"
	pkgredis "github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/resilience"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if err := config.LoadEnvFile(opts.envFile); err != nil {
		fmt.Fprintf(stderr, "failed to load env file: %v\n", err)
		return 2
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 2
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return apperrors.ExitCode(err)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, stderr)
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.FromContext(ctx)

	printer := report.NewPrinter(stdout, cfg.Output.Format, cfg.Output.Color)
	if len(opts.files) == 0 {
		if err := printer.NoFiles(); err != nil {
			log.Error("failed to write output", "error", err)
			return 1
		}
		return 0
	}

	m := metrics.New()
	if cfg.Metrics.Enabled {
		defer func() {
			if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				log.Error("failed to write metrics textfile", "path", cfg.Metrics.Textfile, "error", err)
			}
		}()
	}

	log.Debug("starting run", "files", len(opts.files),
		"words", cfg.Analysis.MinWords,
		"filenum", cfg.Analysis.MinFiles,
		"length", cfg.Analysis.MinLength,
	)
	if err := analyze(ctx, cfg, opts.files, printer, m, runID, log); err != nil {
		log.Error("run failed", "error", err)
		return apperrors.ExitCode(err)
	}
	return 0
}

// analyze runs one pass over files and writes the report.
func analyze(ctx context.Context, cfg *config.Config, files []string, printer *report.Printer, m *metrics.Metrics, runID string, log *slog.Logger) error {
	ctx, root := tracing.StartSpan(ctx, "lexfreq", runID)
	defer func() {
		root.End()
		root.Log(log)
	}()

	russian, english, closeCache := buildStemmers(ctx, cfg, m, log)
	defer closeCache()

	matcher := exclusion.NewMatcher(excludedWords(cfg, log))

	reader, err := corpus.NewReader(cfg.Reader.Concurrency, cfg.Reader.Encoding, m)
	if err != nil {
		return err
	}
	readCtx, readSpan := tracing.StartChildSpan(ctx, "read")
	docs, err := reader.ReadAll(readCtx, files)
	readSpan.SetAttr("files", len(files))
	readSpan.End()
	if err != nil {
		return err
	}

	_, analyzeSpan := tracing.StartChildSpan(ctx, "analyze")
	a := analyzer.New(russian, english, matcher, m)
	var tokens, excluded, skipped int
	for _, doc := range docs {
		if doc.Err != nil {
			log.Error("skipping input file", "path", doc.Path, "error", doc.Err)
			skipped++
			continue
		}
		stats := a.AddDocument(doc.Path, doc.Text)
		tokens += stats.Tokens
		excluded += stats.Excluded
	}
	analyzeSpan.SetAttr("tokens", tokens)
	analyzeSpan.SetAttr("excluded", excluded)
	analyzeSpan.SetAttr("skipped_files", skipped)
	analyzeSpan.End()

	reportCtx, reportSpan := tracing.StartChildSpan(ctx, "report")
	defer reportSpan.End()
	sections, err := a.Report(freqdict.Thresholds{
		MinAmount: cfg.Analysis.MinWords,
		MinFiles:  cfg.Analysis.MinFiles,
		MinLength: cfg.Analysis.MinLength,
	})
	if err != nil {
		return err
	}
	if err := printer.Print(sections); err != nil {
		return err
	}
	if cfg.Kafka.Enabled {
		publishReport(reportCtx, cfg.Kafka, sections, runID, m, log)
	}
	return nil
}

// buildStemmers wraps the snowball stemmers in caches, backed by Redis when
// it is enabled and reachable.
func buildStemmers(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *slog.Logger) (stemmer.Stemmer, stemmer.Stemmer, func()) {
	opts := stemmer.CacheOptions{Metrics: m}
	closeFn := func() {}
	if cfg.Redis.Enabled {
		client, err := resilience.RetryValue(ctx, "redis-connect", resilience.RetryConfig{MaxAttempts: 2},
			func(ctx context.Context) (*pkgredis.Client, error) {
				return pkgredis.NewClient(ctx, cfg.Redis)
			})
		if err != nil {
			log.Warn("stem cache unavailable, stemming locally", "addr", cfg.Redis.Addr, "error", err)
		} else {
			opts.Store = client
			opts.Timeout = cfg.Redis.Timeout
			opts.Breaker = resilience.NewCircuitBreaker("stem-cache", resilience.CircuitBreakerConfig{})
			closeFn = func() {
				if err := client.Close(); err != nil {
					log.Warn("failed to close redis client", "error", err)
				}
			}
			log.Info("stem cache connected", "addr", cfg.Redis.Addr)
		}
	}
	russian := stemmer.NewCached(stemmer.Russian(), tokenizer.Russian.String(), opts)
	english := stemmer.NewCached(stemmer.English(), tokenizer.English.String(), opts)
	return russian, english, closeFn
}

// excludedWords merges the exclusion file with literal words. A file that
// cannot be read is reported and contributes no words.
func excludedWords(cfg *config.Config, log *slog.Logger) []string {
	var fileWords []string
	if cfg.Analysis.ExcludeFile != "" {
		words, err := exclusion.LoadFile(cfg.Analysis.ExcludeFile)
		if err != nil {
			log.Error("failed to read exclusion file", "path", cfg.Analysis.ExcludeFile, "error", err)
		} else {
			fileWords = words
		}
	}
	return exclusion.Combine(fileWords, cfg.Analysis.Exclude)
}

func publishReport(ctx context.Context, cfg config.KafkaConfig, sections []analyzer.Section, runID string, m *metrics.Metrics, log *slog.Logger) {
	producer := kafka.NewProducer(cfg)
	defer func() {
		if err := producer.Close(); err != nil {
			log.Warn("failed to close kafka producer", "error", err)
		}
	}()
	publisher := report.NewPublisher(producer, runID, cfg.PublishTimeout, m)
	if err := publisher.Publish(ctx, sections); err != nil {
		log.Error("failed to publish report", "topic", cfg.Topic, "error", err)
	}
}
