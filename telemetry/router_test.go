package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func configFor(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	return cfg
}

func TestResolveBlankEndpointDisablesTelemetry(t *testing.T) {
	for _, endpoint := range []string{"", "   ", "\t\n"} {
		assert.Nil(t, Resolve(configFor(endpoint), zap.NewNop()), "endpoint %q", endpoint)
	}
}

func TestResolveFormsHostYieldsFormsSubmitter(t *testing.T) {
	s := Resolve(configFor("https://docs.google.com/forms/d/e/XYZ/viewform?entry.1=SYNC_TYPE"), zap.NewNop())
	require.NotNil(t, s)
	forms, ok := s.(*FormsSubmitter)
	require.True(t, ok, "expected a forms submitter but have %T", s)
	assert.Equal(t, "https://docs.google.com/forms/d/e/XYZ/formResponse", forms.endpoint.SubmitURL)
}

func TestResolveOtherHostYieldsStreamSubmitter(t *testing.T) {
	s := Resolve(configFor("https://eventstream.example.com/ingest"), zap.NewNop())
	require.NotNil(t, s)
	_, ok := s.(*StreamSubmitter)
	assert.True(t, ok, "expected a stream submitter but have %T", s)
}

func TestResolvePrefixesDefaultScheme(t *testing.T) {
	s := Resolve(configFor("eventstream.example.com"), zap.NewNop())
	require.NotNil(t, s)
	_, ok := s.(*StreamSubmitter)
	assert.True(t, ok, "expected a stream submitter but have %T", s)
}

func TestResolveSchemelessFormsHostStillRoutesToForms(t *testing.T) {
	s := Resolve(configFor("docs.google.com/forms/d/e/XYZ/viewform?entry.1=SYNC_TYPE"), zap.NewNop())
	require.NotNil(t, s)
	_, ok := s.(*FormsSubmitter)
	assert.True(t, ok, "expected a forms submitter but have %T", s)
}

func TestResolveBackendChoiceDependsOnHostOnly(t *testing.T) {
	// A forms-looking path on another host still routes to the stream backend.
	s := Resolve(configFor("https://example.com/forms/d/e/XYZ/viewform?entry.1=SYNC_TYPE"), zap.NewNop())
	require.NotNil(t, s)
	_, ok := s.(*StreamSubmitter)
	assert.True(t, ok, "expected a stream submitter but have %T", s)
}

func TestResolveFailsClosedOnUnusableFormsURL(t *testing.T) {
	cases := []string{
		"https://docs.google.com/forms/d/e/XYZ/viewform",
		"https://docs.google.com/forms/d/e/XYZ/viewform?usp=pp_url",
		"https://docs.google.com/forms/d/e/XYZ/viewform?entry.1=UNKNOWN_FIELD",
	}
	for _, endpoint := range cases {
		assert.Nil(t, Resolve(configFor(endpoint), zap.NewNop()), "endpoint %q", endpoint)
	}
}

func TestResolveFailsClosedOnUnparseableEndpoint(t *testing.T) {
	assert.Nil(t, Resolve(configFor("https://eventstream example com/%zz"), zap.NewNop()))
}
