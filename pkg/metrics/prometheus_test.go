package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordRequestIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200"))
	RecordRequest("GET", "/health", 200, 5*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200"))
	require.Equal(t, before+1, after)
}

func TestRecordTokensSkipsEmptyUsage(t *testing.T) {
	counter := GenerationTokensTotal.WithLabelValues("test", "prompt")
	before := testutil.ToFloat64(counter)
	RecordTokens("test", TokenUsage{})
	require.Equal(t, before, testutil.ToFloat64(counter))

	RecordTokens("test", TokenUsage{PromptTokens: 12, CompletionTokens: 30, TotalTokens: 42})
	require.Equal(t, before+12, testutil.ToFloat64(counter))
}

func TestOutcome(t *testing.T) {
	require.Equal(t, "ok", Outcome(nil, false))
	require.Equal(t, "timeout", Outcome(errors.New("x"), true))
	require.Equal(t, "error", Outcome(errors.New("x"), false))
}
