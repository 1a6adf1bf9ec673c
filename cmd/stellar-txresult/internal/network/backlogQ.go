package network

import (
	"math"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stellar/go/support/log"
)

const RequestBacklogQueueNoLimit = math.MaxUint64

// The gauge is a writeable prometheus gauge, exposed for testing purposes.
type backlogQLimiter struct {
	limit        uint64
	pending      uint64
	gauge        prometheus.Gauge
	limitReached uint64
	logger       *log.Entry
}

type backlogHTTPQLimiter struct {
	httpDownstreamHandler http.Handler
	backlogQLimiter
}

// MakeHTTPBacklogQueueLimiter rejects requests with 503 Service Unavailable
// once more than limit requests are being served at the same time.
func MakeHTTPBacklogQueueLimiter(downstream http.Handler, gauge prometheus.Gauge, limit uint64, logger *log.Entry) http.Handler {
	if limit == RequestBacklogQueueNoLimit {
		return downstream
	}
	return &backlogHTTPQLimiter{
		httpDownstreamHandler: downstream,
		backlogQLimiter: backlogQLimiter{
			limit:  limit,
			gauge:  gauge,
			logger: logger,
		},
	}
}

func (q *backlogHTTPQLimiter) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	if newPending := atomic.AddUint64(&q.pending, 1); newPending > q.limit {
		// we've reached our queue limit - let the caller know we're too busy.
		atomic.AddUint64(&q.pending, ^uint64(0))
		res.WriteHeader(http.StatusServiceUnavailable)
		if atomic.CompareAndSwapUint64(&q.limitReached, 0, 1) {
			// if the limit was reached, log a message.
			if q.logger != nil {
				q.logger.Infof("Queue limiter reached the queue limit of %d executing concurrent http requests.", q.limit)
			}
		}
		return
	} else if q.gauge != nil {
		q.gauge.Inc()
	}
	defer func() {
		atomic.AddUint64(&q.pending, ^uint64(0))
		if q.gauge != nil {
			q.gauge.Dec()
		}
		atomic.StoreUint64(&q.limitReached, 0)
	}()

	q.httpDownstreamHandler.ServeHTTP(res, req)
}
