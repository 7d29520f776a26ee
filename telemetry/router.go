package telemetry

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/eduardbosch/ide-metrics-plugin/eventstream"
)

const defaultScheme = "https://"

// Submitter transmits one sync event to a backend and reports success.
// Implementations hold no per-call state and are safe to share across
// submission tasks.
type Submitter interface {
	Submit(ctx context.Context, e Event) bool
}

// Resolve picks the backend for the configured endpoint. A blank endpoint
// disables telemetry (nil submitter, warning logged). A forms-hosted URL
// must parse into usable field mappings or resolution fails closed. Every
// other host gets the stream backend — the choice depends on the host only,
// never on path or query.
func Resolve(cfg Config, logger *zap.Logger) Submitter {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		logger.Warn("telemetry endpoint not configured, submission disabled")
		return nil
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = defaultScheme + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		logger.Error("telemetry endpoint is not a valid url, submission disabled",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil
	}

	client := newHTTPClient(cfg.Timeouts)
	if IsFormsHost(u.Hostname()) {
		parsed, err := ParseFormsURL(endpoint, logger)
		if err != nil {
			logger.Error("failed to parse forms endpoint, submission disabled",
				zap.String("endpoint", endpoint),
				zap.Error(err))
			return nil
		}
		logger.Info("telemetry routed to forms backend",
			zap.String("url", parsed.SubmitURL),
			zap.Int("fields", len(parsed.Mappings)))
		return NewFormsSubmitter(*parsed, client, logger)
	}

	logger.Info("telemetry routed to stream backend", zap.String("url", endpoint))
	return NewStreamSubmitter(eventstream.New(eventstream.Config{
		URL:        endpoint,
		MaxBatch:   cfg.Stream.MaxBatch,
		MaxRetries: cfg.Stream.MaxRetries,
	}, client, logger), logger)
}
