package network

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stellar/go/support/log"
)

type requestDurationLimiter struct {
	limitThreshold time.Duration
	limitCounter   prometheus.Counter
	logger         *log.Entry
}

type httpRequestDurationLimiter struct {
	httpDownstreamHandler http.Handler
	requestDurationLimiter
}

// MakeHTTPRequestDurationLimiter bounds the time spent serving a request.
// Handlers observe the limit through the request context; once it
// elapses the limiter answers 504 Gateway Timeout unless the handler has
// already written a response.
func MakeHTTPRequestDurationLimiter(
	downstream http.Handler,
	limitThreshold time.Duration,
	limitCounter prometheus.Counter,
	logger *log.Entry,
) http.Handler {
	return &httpRequestDurationLimiter{
		httpDownstreamHandler: downstream,
		requestDurationLimiter: requestDurationLimiter{
			limitThreshold: limitThreshold,
			limitCounter:   limitCounter,
			logger:         logger,
		},
	}
}

type bufferedResponseWriter struct {
	header     http.Header
	buffer     []byte
	statusCode int
}

func makeBufferedResponseWriter(rw http.ResponseWriter) *bufferedResponseWriter {
	header := rw.Header()
	bw := &bufferedResponseWriter{
		header: make(http.Header),
	}
	for k, v := range header {
		bw.header[k] = v
	}
	return bw
}

func (w *bufferedResponseWriter) Header() http.Header {
	return w.header
}

func (w *bufferedResponseWriter) Write(buf []byte) (int, error) {
	w.buffer = append(w.buffer, buf...)
	return len(buf), nil
}

func (w *bufferedResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
}

func (w *bufferedResponseWriter) WriteOut(ctx context.Context, rw http.ResponseWriter) {
	// update the headers map.
	headers := rw.Header()
	for k := range headers {
		delete(headers, k)
	}
	for k, v := range w.header {
		headers[k] = v
	}

	if w.statusCode != 0 {
		rw.WriteHeader(w.statusCode)
	}
	if len(w.buffer) > 0 && ctx.Err() == nil {
		// the following return size/error won't help us much at this point. The request is already finalized.
		rw.Write(w.buffer) //nolint:errcheck
	}
}

func (q *httpRequestDurationLimiter) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	if q.limitThreshold <= 0 {
		q.httpDownstreamHandler.ServeHTTP(res, req)
		return
	}
	limitCtx, limitCtxCancel := context.WithTimeout(req.Context(), q.limitThreshold)
	defer limitCtxCancel()

	requestCompleted := make(chan []string, 1)
	responseBuffer := makeBufferedResponseWriter(res)
	go func() {
		defer func() {
			if err := recover(); err != nil {
				functionName := "MakeHTTPRequestDurationLimiter"
				if q.logger != nil {
					q.logger.Errorf("%s: request processing panic: %v", functionName, err)
				}
				requestCompleted <- []string{"panic"}
				return
			}
			close(requestCompleted)
		}()
		q.httpDownstreamHandler.ServeHTTP(responseBuffer, req.WithContext(limitCtx))
	}()

	select {
	case <-limitCtx.Done():
		if q.limitCounter != nil {
			q.limitCounter.Inc()
		}
		if q.logger != nil {
			q.logger.Warnf("Request processing for %s exceeded limiting threshold of %v", req.URL.Path, q.limitThreshold)
		}
		if req.Context().Err() == nil {
			res.WriteHeader(http.StatusGatewayTimeout)
		}
	case errStrings, ok := <-requestCompleted:
		if ok && len(errStrings) > 0 {
			res.WriteHeader(http.StatusInternalServerError)
			return
		}
		responseBuffer.WriteOut(req.Context(), res)
	}
}
