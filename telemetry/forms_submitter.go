package telemetry

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/carlmjohnson/requests"
	"go.uber.org/zap"
)

// FormsSubmitter sends one sync event per HTTP GET to a Google Forms
// submission URL. There is no batching or retry: the forms backend accepts
// one response per request, and a lost event is acceptable for telemetry.
type FormsSubmitter struct {
	endpoint ParsedFormsEndpoint
	client   *http.Client
	logger   *zap.Logger
}

func NewFormsSubmitter(endpoint ParsedFormsEndpoint, client *http.Client, logger *zap.Logger) *FormsSubmitter {
	return &FormsSubmitter{endpoint: endpoint, client: client, logger: logger}
}

// Submit renders the parsed mappings against the event and issues a single
// GET. Returns true only for a 2xx response; every other status, transport
// error or timeout is logged and reported as false.
func (s *FormsSubmitter) Submit(ctx context.Context, e Event) bool {
	err := requests.
		URL(s.endpoint.SubmitURL + "?" + s.encodeQuery(e)).
		Client(s.client).
		Fetch(ctx)
	if err != nil {
		s.logger.Error("forms submission failed",
			zap.String("url", s.endpoint.SubmitURL),
			zap.Error(err))
		return false
	}
	return true
}

// encodeQuery builds the entry query string in parse order. Absent field
// values submit as the empty string, never as a literal "null".
func (s *FormsSubmitter) encodeQuery(e Event) string {
	var query strings.Builder
	for i, m := range s.endpoint.Mappings {
		value, present := m.Get(e)
		if !present {
			value = ""
		}
		if i > 0 {
			query.WriteByte('&')
		}
		query.WriteString(m.EntryID)
		query.WriteByte('=')
		query.WriteString(url.QueryEscape(value))
	}
	return query.String()
}
