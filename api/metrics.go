package api

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName       = "kanban-api"
	boardSpanName    = "board.fetch"
	boardEventName   = "board.fetch"
	boardEventDomain = "kanban"
)

// boardRequestMetrics records per-request observations for board
// fetches and emits them as a span plus a structured log entry.
type boardRequestMetrics struct {
	logger          *log.Logger
	span            trace.Span
	route           string
	start           time.Time
	fetchDuration   time.Duration
	encodeDuration  time.Duration
	columnsReturned int
	tasksReturned   int
	errorStage      string
}

func newBoardRequestMetrics(ctx context.Context, logger *log.Logger, route string) (*boardRequestMetrics, context.Context) {
	m := &boardRequestMetrics{
		logger: logger,
		route:  route,
		start:  time.Now(),
	}
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, boardSpanName)
	m.span = span
	return m, spanCtx
}

func (m *boardRequestMetrics) ObserveFetch(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.fetchDuration = duration
}

func (m *boardRequestMetrics) ObserveEncode(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.encodeDuration = duration
}

func (m *boardRequestMetrics) SetReturned(columns, tasks int) {
	if columns < 0 {
		columns = 0
	}
	if tasks < 0 {
		tasks = 0
	}
	m.columnsReturned = columns
	m.tasksReturned = tasks
}

func (m *boardRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

// Log finalizes the span and emits the observability event. It must be
// called exactly once per request.
func (m *boardRequestMetrics) Log(status int, err error) {
	if m == nil {
		return
	}
	totalMs := durationToMillis(time.Since(m.start))

	attrs := []attribute.KeyValue{
		attribute.String("http.route", m.route),
		attribute.Int("http.status_code", status),
		attribute.Float64("kanban.board.total_ms", totalMs),
		attribute.Int("kanban.board.columns_returned", m.columnsReturned),
		attribute.Int("kanban.board.tasks_returned", m.tasksReturned),
	}
	if m.fetchDuration > 0 {
		attrs = append(attrs, attribute.Float64("kanban.board.fetch_ms", durationToMillis(m.fetchDuration)))
	}
	if m.encodeDuration > 0 {
		attrs = append(attrs, attribute.Float64("kanban.board.encode_ms", durationToMillis(m.encodeDuration)))
	}
	if m.errorStage != "" {
		attrs = append(attrs, attribute.String("kanban.board.error_stage", m.errorStage))
	}

	severityText, severityNumber := severityForStatus(status, err)

	if m.span != nil {
		m.span.SetAttributes(attrs...)
		eventAttrs := append([]attribute.KeyValue{
			attribute.String("event.name", boardEventName),
			attribute.String("event.domain", boardEventDomain),
			attribute.String("severity_text", severityText),
			attribute.Int("severity_number", severityNumber),
		}, attrs...)
		if err != nil {
			eventAttrs = append(eventAttrs, attribute.String("error.message", err.Error()))
		}
		m.span.AddEvent("observability.event", trace.WithAttributes(eventAttrs...))
		if err != nil {
			m.span.RecordError(err)
			m.span.SetStatus(codes.Error, err.Error())
		} else {
			m.span.SetStatus(codes.Ok, "")
		}
		m.span.End()
	}

	if m.logger == nil {
		return
	}
	fields := log.Fields{
		"event.name":      boardEventName,
		"event.domain":    boardEventDomain,
		"severity_text":   severityText,
		"severity_number": severityNumber,
		"attributes": map[string]any{
			"http.route":                    m.route,
			"http.status_code":              status,
			"kanban.board.total_ms":         totalMs,
			"kanban.board.columns_returned": m.columnsReturned,
			"kanban.board.tasks_returned":   m.tasksReturned,
		},
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	if m.span != nil {
		if sc := m.span.SpanContext(); sc.HasTraceID() {
			fields["trace_id"] = sc.TraceID().String()
		}
	}
	m.logger.WithFields(fields).Info("observability.event")
}

// severityForStatus maps an HTTP status and optional error to an
// OpenTelemetry log severity pair.
func severityForStatus(status int, err error) (string, int) {
	switch {
	case err != nil || status >= 500:
		return "ERROR", 17
	case status >= 400:
		return "WARN", 13
	default:
		return "INFO", 9
	}
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
