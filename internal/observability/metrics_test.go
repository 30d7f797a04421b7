package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/staff", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/staff", "GET", 200, 30*time.Millisecond)
	m.RecordError("/messages", "POST", "VALIDATION_FAILED")

	snap := m.Snapshot()

	assert.Equal(t, int64(2), snap.Requests["/staff|GET|200"])
	assert.InDelta(t, 20.0, snap.AvgLatencyMs["/staff|GET|200"], 0.001)
	assert.Equal(t, int64(1), snap.Errors["/messages|POST|VALIDATION_FAILED"])
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")

	assert.Empty(t, m.Snapshot().Requests)
}
