package eventstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func testRecords(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{Fields: []Field{
			{Name: "SYNC_TYPE", Value: "succeeded"},
			{Name: "TASK_COUNT", Value: fmt.Sprintf("%d", i)},
		}}
	}
	return records
}

func ackAll(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	n := len(gjson.GetBytes(body, "records").Array())
	fmt.Fprintf(w, `{"accepted": %d}`, n)
}

func TestPublishSendsEnvelope(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		ct := r.Header.Get("Content-Type")
		assert.Equal(t, "application/json", ct)
		fmt.Fprint(w, `{"accepted": 2}`)
	}))
	defer server.Close()

	c := New(Config{URL: server.URL}, server.Client(), zap.NewNop())
	require.NoError(t, c.Publish(context.Background(), testRecords(2)))

	assert.NotEmpty(t, gjson.Get(body, "batchId").String())
	assert.Greater(t, gjson.Get(body, "sentAt").Int(), int64(0))
	records := gjson.Get(body, "records").Array()
	require.Len(t, records, 2)
	assert.Equal(t, "succeeded", records[0].Get("SYNC_TYPE").String())
	assert.Equal(t, "1", records[1].Get("TASK_COUNT").String())
}

func TestPublishSplitsIntoBatches(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		ackAll(w, r)
	}))
	defer server.Close()

	c := New(Config{URL: server.URL, MaxBatch: 2}, server.Client(), zap.NewNop())
	require.NoError(t, c.Publish(context.Background(), testRecords(5)))
	assert.Equal(t, 3, requests)
}

func TestPublishRetriesTransientFailures(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		ackAll(w, r)
	}))
	defer server.Close()

	c := New(Config{URL: server.URL, MaxRetries: 2}, server.Client(), zap.NewNop())
	require.NoError(t, c.Publish(context.Background(), testRecords(1)))
	assert.Equal(t, 2, requests)
}

func TestPublishFailsAfterExhaustingRetries(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(Config{URL: server.URL, MaxRetries: 2}, server.Client(), zap.NewNop())
	assert.Error(t, c.Publish(context.Background(), testRecords(1)))
	assert.Equal(t, 3, requests) // initial attempt plus two retries
}

func TestPublishDoesNotRetryPartialAcknowledgement(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"accepted": 1}`)
	}))
	defer server.Close()

	c := New(Config{URL: server.URL, MaxRetries: 5}, server.Client(), zap.NewNop())
	err := c.Publish(context.Background(), testRecords(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepted 1 of 2")
	assert.Equal(t, 1, requests)
}

func TestPublishEmptyIsNoOp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for empty publish")
	}))
	defer server.Close()

	c := New(Config{URL: server.URL}, server.Client(), zap.NewNop())
	require.NoError(t, c.Publish(context.Background(), nil))
}
