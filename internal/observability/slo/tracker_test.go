package slo

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTracker_FlushComputesWindow(t *testing.T) {
	tr := NewTracker()
	for i := 1; i <= 100; i++ {
		tr.Observe(200, time.Duration(i)*time.Millisecond)
	}
	tr.Observe(503, 150*time.Millisecond)

	w := tr.Flush()

	assert.Equal(t, 101, w.Requests)
	assert.Equal(t, 1, w.Errors)
	assert.InDelta(t, 1.0/101, w.ErrorRate, 1e-9)
	assert.InDelta(t, 100.0/101, w.Availability, 1e-9)
	assert.Equal(t, 96*time.Millisecond, w.P95)
	assert.Equal(t, 100*time.Millisecond, w.P99)

	assert.InDelta(t, w.Availability, testutil.ToFloat64(SLOAvailability), 1e-9)
	assert.InDelta(t, w.P95.Seconds(), testutil.ToFloat64(SLOLatencyP95), 1e-9)
}

func TestTracker_FlushResetsWindow(t *testing.T) {
	tr := NewTracker()
	tr.Observe(500, time.Second)
	tr.Flush()

	w := tr.Flush()

	assert.Equal(t, Window{Availability: 1}, w)
	assert.True(t, w.Meets())
	assert.Equal(t, 1.0, testutil.ToFloat64(SLOAvailability))
}

func TestWindow_Meets(t *testing.T) {
	tests := []struct {
		name string
		w    Window
		want bool
	}{
		{name: "healthy", w: Window{Availability: 1, P95: 50 * time.Millisecond, P99: 100 * time.Millisecond}, want: true},
		{name: "slow p95", w: Window{Availability: 1, P95: 300 * time.Millisecond, P99: 400 * time.Millisecond}, want: false},
		{name: "slow p99", w: Window{Availability: 1, P95: 100 * time.Millisecond, P99: time.Second}, want: false},
		{name: "error budget blown", w: Window{Availability: 0.99, ErrorRate: 0.01}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.w.Meets())
		})
	}
}

func TestTracker_ConcurrentObserve(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Observe(200, time.Millisecond)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, tr.Flush().Requests)
}

func TestTracker_CapsSamples(t *testing.T) {
	tr := NewTracker()
	for i := 0; i < maxSamples+10; i++ {
		tr.Observe(200, time.Millisecond)
	}

	assert.Len(t, tr.latencies, maxSamples)
	assert.Equal(t, maxSamples+10, tr.Flush().Requests)
}
