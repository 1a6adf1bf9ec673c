package network

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/go/support/log"
)

type blockingHandler struct {
	entered chan struct{}
	release chan struct{}
}

func (h *blockingHandler) ServeHTTP(res http.ResponseWriter, _ *http.Request) {
	h.entered <- struct{}{}
	<-h.release
	res.WriteHeader(http.StatusOK)
}

func TestBacklogQueueLimiter(t *testing.T) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "pending"})
	downstream := &blockingHandler{entered: make(chan struct{}), release: make(chan struct{})}
	limiter := MakeHTTPBacklogQueueLimiter(downstream, gauge, 2, log.DefaultLogger)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := httptest.NewRecorder()
			limiter.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
			codes[i] = rec.Code
		}(i)
		<-downstream.entered
	}
	assert.InDelta(t, 2, testutil.ToFloat64(gauge), 0)

	rec := httptest.NewRecorder()
	limiter.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	close(downstream.release)
	wg.Wait()
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)
	assert.InDelta(t, 0, testutil.ToFloat64(gauge), 0)
}

func TestBacklogQueueLimiterNoLimit(t *testing.T) {
	downstream := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	limiter := MakeHTTPBacklogQueueLimiter(downstream, nil, RequestBacklogQueueNoLimit, nil)
	_, wrapped := limiter.(*backlogHTTPQLimiter)
	assert.False(t, wrapped)
}

func TestRequestDurationLimiterPassesResponse(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "limited"})
	downstream := http.HandlerFunc(func(res http.ResponseWriter, _ *http.Request) {
		res.Header().Set("Content-Type", "application/json")
		res.WriteHeader(http.StatusAccepted)
		_, _ = res.Write([]byte(`{"ok":true}`))
	})
	limiter := MakeHTTPRequestDurationLimiter(downstream, time.Minute, counter, log.DefaultLogger)

	rec := httptest.NewRecorder()
	limiter.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.InDelta(t, 0, testutil.ToFloat64(counter), 0)
}

func TestRequestDurationLimiterTimesOut(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "limited"})
	done := make(chan struct{})
	downstream := http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		defer close(done)
		<-req.Context().Done()
		res.WriteHeader(http.StatusOK)
	})
	limiter := MakeHTTPRequestDurationLimiter(downstream, 10*time.Millisecond, counter, log.DefaultLogger)

	rec := httptest.NewRecorder()
	limiter.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.InDelta(t, 1, testutil.ToFloat64(counter), 0)
	<-done
}

func TestRequestDurationLimiterRecoversPanics(t *testing.T) {
	downstream := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	limiter := MakeHTTPRequestDurationLimiter(downstream, time.Minute, nil, log.DefaultLogger)

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		limiter.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
