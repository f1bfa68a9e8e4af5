package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordOperation(t *testing.T) {
	m := New()

	m.RecordOperation("deposit", nil)
	m.RecordOperation("deposit", nil)
	m.RecordOperation("deposit", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("deposit", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("deposit", "error")))
}

func TestMetrics_RecordRequest(t *testing.T) {
	m := New()

	m.RecordRequest("POST /login", 200, 5*time.Millisecond)
	m.RecordRequest("POST /login", 401, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST /login", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST /login", "401")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordOperation("withdraw", nil)
		m.IncrPersistFailure("bank")
		m.RecordRequest("GET /health", 200, time.Millisecond)
	})
}
