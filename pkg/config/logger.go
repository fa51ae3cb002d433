package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes structured logs through zap with trace correlation, and
// optionally pushes the *WithTrace entries to a Loki instance.
type Logger struct {
	Logger      *otelzap.Logger
	ServiceName string
	lokiURL     string
	httpClient  *http.Client
	pending     sync.WaitGroup
}

type LokiLogEntry struct {
	Streams []LokiStream `json:"streams"`
}

type LokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// NewLogger builds a production zap logger. An empty lokiURL disables the push.
func NewLogger(serviceName, lokiURL string) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()

	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return newLogger(zapLogger, serviceName, lokiURL), nil
}

// NewNopLogger discards local output. Used by tests.
func NewNopLogger(serviceName, lokiURL string) *Logger {
	return newLogger(zap.NewNop(), serviceName, lokiURL)
}

func newLogger(zapLogger *zap.Logger, serviceName, lokiURL string) *Logger {
	pushURL := ""

	if lokiURL != "" {
		pushURL = strings.TrimRight(lokiURL, "/") + "/loki/api/v1/push"
	}

	return &Logger{
		Logger:      otelzap.New(zapLogger),
		ServiceName: serviceName,
		lokiURL:     pushURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Zap returns the plain zap logger for components that do not need trace
// correlation.
func (l *Logger) Zap() *zap.Logger {
	return l.Logger.Logger
}

// Sync waits for in-flight Loki pushes and flushes zap.
func (l *Logger) Sync() error {
	l.pending.Wait()
	return l.Logger.Sync()
}

func (l *Logger) InfoWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.InfoLevel, msg, fields...)
}

func (l *Logger) WarnWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.WarnLevel, msg, fields...)
}

func (l *Logger) ErrorWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.ErrorLevel, msg, fields...)
}

func (l *Logger) logWithTrace(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	logFields := append(fields, zap.String("service", l.ServiceName))

	switch level {
	case zapcore.ErrorLevel:
		l.Logger.Ctx(ctx).Error(msg, logFields...)
	case zapcore.WarnLevel:
		l.Logger.Ctx(ctx).Warn(msg, logFields...)
	default:
		l.Logger.Ctx(ctx).Info(msg, logFields...)
	}

	if l.lokiURL == "" {
		return
	}

	entry, err := l.buildEntry(ctx, level, msg, logFields)

	if err != nil {
		l.Logger.Ctx(ctx).Error("Failed to encode loki entry", zap.Error(err))
		return
	}

	l.pending.Add(1)

	go func() {
		defer l.pending.Done()

		if err := l.push(entry); err != nil {
			l.Logger.Logger.Warn("Failed to push log to loki", zap.Error(err))
		}
	}()
}

func (l *Logger) buildEntry(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) (LokiLogEntry, error) {
	now := time.Now()

	encoder := zapcore.NewMapObjectEncoder()

	for _, field := range fields {
		field.AddTo(encoder)
	}

	logData := encoder.Fields
	logData["timestamp"] = now.Format(time.RFC3339Nano)
	logData["level"] = level.String()
	logData["message"] = msg

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		logData["trace_id"] = span.SpanContext().TraceID().String()
		logData["span_id"] = span.SpanContext().SpanID().String()
	}

	line, err := json.Marshal(logData)

	if err != nil {
		return LokiLogEntry{}, err
	}

	return LokiLogEntry{
		Streams: []LokiStream{
			{
				Stream: map[string]string{
					"service": l.ServiceName,
					"level":   level.String(),
				},
				Values: [][]string{
					{strconv.FormatInt(now.UnixNano(), 10), string(line)},
				},
			},
		},
	}, nil
}

func (l *Logger) push(entry LokiLogEntry) error {
	body, err := json.Marshal(entry)

	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, l.lokiURL, bytes.NewReader(body))

	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("loki responded with %d", resp.StatusCode)
	}

	return nil
}
