package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/lexfreq/internal/analyzer"
	apperrors "github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/resilience"
)

// RowEvent is the payload published for every report row.
type RowEvent struct {
	RunID    string   `json:"run_id"`
	Language string   `json:"language"`
	Stem     string   `json:"stem"`
	Surface  string   `json:"surface"`
	Amount   int      `json:"amount"`
	Files    []string `json:"files"`
}

type eventPublisher interface {
	PublishBatch(ctx context.Context, events []kafka.Event) error
}

// Publisher sends report rows to Kafka as one batch.
type Publisher struct {
	producer eventPublisher
	runID    string
	timeout  time.Duration
	retry    resilience.RetryConfig
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewPublisher creates a Publisher. m may be nil.
func NewPublisher(producer eventPublisher, runID string, timeout time.Duration, m *metrics.Metrics) *Publisher {
	return &Publisher{
		producer: producer,
		runID:    runID,
		timeout:  timeout,
		retry: resilience.RetryConfig{
			MaxAttempts:  3,
			InitialDelay: 200 * time.Millisecond,
			RetryIf:      isTransient,
		},
		metrics: m,
		logger:  logger.WithComponent("report-publisher"),
	}
}

// Events converts sections into Kafka events keyed by "language:stem".
func (p *Publisher) Events(sections []analyzer.Section) []kafka.Event {
	var events []kafka.Event
	for _, section := range sections {
		lang := section.Language.String()
		for _, row := range section.Rows {
			events = append(events, kafka.Event{
				Key:     lang + ":" + row.Stem,
				Headers: map[string]string{"run_id": p.runID},
				Value: RowEvent{
					RunID:    p.runID,
					Language: lang,
					Stem:     row.Stem,
					Surface:  row.Surface,
					Amount:   row.Amount,
					Files:    row.Files,
				},
			})
		}
	}
	return events
}

// Publish sends every row. Nothing is sent when there are no rows.
func (p *Publisher) Publish(ctx context.Context, sections []analyzer.Section) error {
	events := p.Events(sections)
	if len(events) == 0 {
		p.logger.Debug("no report rows to publish")
		return nil
	}
	err := resilience.Retry(ctx, "publish-report", p.retry, func(ctx context.Context) error {
		return resilience.WithTimeout(ctx, p.timeout, "publish-report", func(ctx context.Context) error {
			return p.producer.PublishBatch(ctx, events)
		})
	})
	if err != nil {
		p.record("error")
		return fmt.Errorf("publishing report: %w", err)
	}
	p.record("ok")
	p.logger.Info("report published", "rows", len(events))
	return nil
}

// isTransient rejects errors that another attempt cannot fix.
func isTransient(err error) bool {
	return !errors.Is(err, apperrors.ErrInvalidInput)
}

func (p *Publisher) record(status string) {
	if p.metrics != nil {
		p.metrics.ReportsPublished.WithLabelValues(status).Inc()
	}
}
