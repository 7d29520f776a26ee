package telemetry

import (
	"context"

	"go.uber.org/zap"

	"github.com/eduardbosch/ide-metrics-plugin/eventstream"
)

// StreamSubmitter adapts the batching event-stream client to the single
// event Submitter contract. Each event travels as a batch of one; batching
// of multiple events, retry counts and encoding stay entirely the client's
// concern.
type StreamSubmitter struct {
	client *eventstream.Client
	logger *zap.Logger
}

func NewStreamSubmitter(client *eventstream.Client, logger *zap.Logger) *StreamSubmitter {
	return &StreamSubmitter{client: client, logger: logger}
}

func (s *StreamSubmitter) Submit(ctx context.Context, e Event) bool {
	err := s.client.Publish(ctx, []eventstream.Record{streamRecord(e)})
	if err != nil {
		s.logger.Error("stream submission failed", zap.Error(err))
		return false
	}
	return true
}

// streamRecord renders every registered placeholder against the event, in
// table order. Absent values travel as empty strings.
func streamRecord(e Event) eventstream.Record {
	fields := make([]eventstream.Field, 0, len(placeholderTable))
	for _, p := range placeholderTable {
		value, present := p.get(e)
		if !present {
			value = ""
		}
		fields = append(fields, eventstream.Field{Name: p.name, Value: value})
	}
	return eventstream.Record{Fields: fields}
}
