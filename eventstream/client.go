// Package eventstream is the batching client for the stream telemetry
// backend. Records are wrapped in a JSON envelope, POSTed in batches and
// retried with exponential backoff until the backend acknowledges them.
package eventstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/cenkalti/backoff/v4"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	DefaultMaxBatch   = 50
	DefaultMaxRetries = 3

	// Hard cap on records per request regardless of configuration.
	maxBatchCap = 500

	initialRetryInterval = 500 * time.Millisecond
)

// Field is one named value of a record. Fields keep their registration
// order so the backend sees a stable column layout.
type Field struct {
	Name  string
	Value string
}

// Record is a single telemetry record in wire order.
type Record struct {
	Fields []Field
}

type Config struct {
	URL        string
	MaxBatch   int
	MaxRetries int
}

type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

func New(cfg Config, client *http.Client, logger *zap.Logger) *Client {
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = DefaultMaxBatch
	}
	if cfg.MaxBatch > maxBatchCap {
		cfg.MaxBatch = maxBatchCap
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{cfg: cfg, client: client, logger: logger}
}

// Publish sends the records to the backend, splitting into requests of at
// most MaxBatch records. The first failed batch aborts the remainder.
func (c *Client) Publish(ctx context.Context, records []Record) error {
	for start := 0; start < len(records); start += c.cfg.MaxBatch {
		end := start + c.cfg.MaxBatch
		if end > len(records) {
			end = len(records)
		}
		if err := c.publishBatch(ctx, records[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) publishBatch(ctx context.Context, batch []Record) error {
	body, err := marshalEnvelope(batch)
	if err != nil {
		return fmt.Errorf("failed to encode batch envelope: %w", err)
	}
	attempt := func() error {
		var ack string
		err := requests.
			URL(c.cfg.URL).
			Client(c.client).
			BodyBytes(body).
			ContentType("application/json").
			ToString(&ack).
			Fetch(ctx)
		if err != nil {
			c.logger.Warn("event stream request failed, will retry",
				zap.Int("records", len(batch)),
				zap.Error(err))
			return err
		}
		// A partial acknowledgement is a backend-side rejection, not a
		// transient fault — retrying would duplicate the accepted records.
		if accepted := gjson.Get(ack, "accepted").Int(); accepted < int64(len(batch)) {
			return backoff.Permanent(fmt.Errorf("backend accepted %d of %d records", accepted, len(batch)))
		}
		return nil
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(newRetryBackoff(), uint64(c.cfg.MaxRetries)), ctx)
	return backoff.Retry(attempt, policy)
}

func newRetryBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialRetryInterval
	return b
}
