package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// value 读取Counter或Gauge的当前值
func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	out := &dto.Metric{}
	require.NoError(t, m.Write(out))
	if out.Counter != nil {
		return out.GetCounter().GetValue()
	}
	return out.GetGauge().GetValue()
}

func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	first := HTTPRequestsTotal

	// 第二次调用不会重复注册(重复注册会panic)
	assert.NotPanics(t, InitMetrics)
	assert.Same(t, first, HTTPRequestsTotal)
}

func TestObserveHTTPRequest(t *testing.T) {
	InitMetrics()
	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/books", "200")
	before := value(t, counter)

	ObserveHTTPRequest(http.MethodGet, "/api/books", http.StatusOK, 12*time.Millisecond)
	ObserveHTTPRequest(http.MethodGet, "/api/books", http.StatusOK, 30*time.Millisecond)

	assert.Equal(t, before+2, value(t, counter))

	// 直方图样本数
	m := &dto.Metric{}
	h, ok := HTTPRequestDuration.WithLabelValues(http.MethodGet, "/api/books").(prometheus.Histogram)
	require.True(t, ok)
	require.NoError(t, h.Write(m))
	assert.GreaterOrEqual(t, m.GetHistogram().GetSampleCount(), uint64(2))
}

func TestObserveHTTPRequest_UnmatchedPath(t *testing.T) {
	ObserveHTTPRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.GreaterOrEqual(t, value(t, HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")), float64(1))
}

func TestTrackInProgress(t *testing.T) {
	InitMetrics()
	before := value(t, HTTPRequestsInProgress)

	done := TrackInProgress()
	assert.Equal(t, before+1, value(t, HTTPRequestsInProgress))

	done()
	assert.Equal(t, before, value(t, HTTPRequestsInProgress))
}

func TestBusinessMetrics(t *testing.T) {
	InitMetrics()
	created := value(t, BookMutationsTotal.WithLabelValues(OperationCreate))
	rejected := value(t, RateLimitRejectionsTotal)

	RecordBookMutation(OperationCreate)
	RecordRateLimitRejection()

	assert.Equal(t, created+1, value(t, BookMutationsTotal.WithLabelValues(OperationCreate)))
	assert.Equal(t, rejected+1, value(t, RateLimitRejectionsTotal))
}

func TestMetricsRegisteredInDefaultGatherer(t *testing.T) {
	RecordBookMutation(OperationDelete)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["books_mutations_total"])
}
