package internal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"

	"github.com/stellar/go/support/log"

	"github.com/stellar/txresult/cmd/stellar-txresult/internal/config"
	"github.com/stellar/txresult/cmd/stellar-txresult/internal/daemon/interfaces"
	"github.com/stellar/txresult/cmd/stellar-txresult/internal/db"
	"github.com/stellar/txresult/cmd/stellar-txresult/internal/feewindow"
	"github.com/stellar/txresult/cmd/stellar-txresult/internal/methods"
	"github.com/stellar/txresult/cmd/stellar-txresult/internal/network"
)

// maxHTTPRequestSize defines the largest request size that the http handler
// would be willing to accept before dropping the request.
const maxHTTPRequestSize = 512 * 1024 // half a megabyte

// Handler is the HTTP handler which serves the JSON RPC responses
type Handler struct {
	bridge jhttp.Bridge
	logger *log.Entry
	http.Handler
}

// Close closes all the resources held by the Handler instances.
// After Close is called the Handler instance will stop accepting JSON RPC requests.
func (h Handler) Close() {
	if err := h.bridge.Close(); err != nil {
		h.logger.WithError(err).Warn("could not close bridge")
	}
}

type HandlerParams struct {
	FeeWindow    *feewindow.FeeWindow
	ResultReader db.ResultReader
	ResultWriter db.ResultWriter
	Logger       *log.Entry
	Daemon       interfaces.Daemon
}

func decorateHandlers(daemon interfaces.Daemon, logger *log.Entry, m handler.Map) handler.Map {
	requestMetric := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  daemon.MetricsNamespace(),
		Subsystem:  "json_rpc",
		Name:       "request_duration_seconds",
		Help:       "JSON RPC request duration",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001}, //nolint:mnd
	}, []string{"endpoint", "status"})
	prometheusLabelReplacer := strings.NewReplacer(" ", "_", "-", "_", "(", "", ")", "")
	decorated := handler.Map{}
	for endpoint, h := range m {
		// create copy of h so it can be used in closure below
		h := h
		decorated[endpoint] = handler.New(func(ctx context.Context, r *jrpc2.Request) (interface{}, error) {
			reqID := strconv.FormatUint(middleware.NextRequestID(), 10)
			logRequest(logger, reqID, r)
			startTime := time.Now()
			result, err := h(ctx, r)
			duration := time.Since(startTime)
			label := prometheus.Labels{"endpoint": r.Method(), "status": "ok"}
			if err != nil {
				label["status"] = "error"
				var jsonRPCErr *jrpc2.Error
				if errors.As(err, &jsonRPCErr) {
					label["status"] = prometheusLabelReplacer.Replace(jsonRPCErr.Code.String())
				}
			}
			requestMetric.With(label).Observe(duration.Seconds())
			logResponse(logger, reqID, duration, label["status"], result)
			return result, err
		})
	}
	daemon.MetricsRegistry().MustRegister(requestMetric)
	return decorated
}

func logRequest(logger *log.Entry, reqID string, req *jrpc2.Request) {
	logger = logger.WithFields(log.F{
		"subsys":   "jsonrpc",
		"req":      reqID,
		"json_req": req.ID(),
		"method":   req.Method(),
	})
	logger.Info("starting JSONRPC request")

	// Params are useful but can be really verbose, let's only print them in debug level
	logger = logger.WithField("params", req.ParamString())
	logger.Debug("starting JSONRPC request params")
}

func logResponse(logger *log.Entry, reqID string, duration time.Duration, status string, response any) {
	logger = logger.WithFields(log.F{
		"subsys":   "jsonrpc",
		"req":      reqID,
		"duration": duration.String(),
		"status":   status,
	})
	logger.Info("finished JSONRPC request")

	if status == "ok" {
		responseBytes, err := json.Marshal(response)
		if err == nil {
			// the result is useful but can be really verbose, let's only print it with debug level
			logger = logger.WithField("result", string(responseBytes))
			logger.Debug("finished JSONRPC request result")
		}
	}
}

// NewJSONRPCHandler constructs a Handler instance
func NewJSONRPCHandler(cfg *config.Config, params HandlerParams) Handler {
	bridgeOptions := jhttp.BridgeOptions{
		Server: &jrpc2.ServerOptions{
			Logger: func(text string) { params.Logger.Debug(text) },
		},
	}
	decodeParams := methods.DecodeParams{
		Logger:        params.Logger,
		Writer:        params.ResultWriter,
		FeeWindow:     params.FeeWindow,
		Metrics:       methods.NewDecodeMetrics(params.Daemon),
		MaxOperations: cfg.MaxOperations,
	}
	handlers := handler.Map{
		"getHealth":               methods.NewHealthCheck(params.ResultReader),
		"getVersionInfo":          methods.NewGetVersionInfoHandler(),
		"getFeeStats":             methods.NewGetFeeStatsHandler(params.FeeWindow, cfg.FeeStatsWindow),
		"decodeTransactionResult": methods.NewDecodeTransactionResultHandler(decodeParams),
		"getTransactionResult": methods.NewGetTransactionResultHandler(
			params.Logger, params.ResultReader, cfg.MaxOperations),
	}
	bridge := jhttp.NewBridge(decorateHandlers(
		params.Daemon,
		params.Logger,
		handlers),
		&bridgeOptions)

	// globalQueueRequestBacklogLimiter is a metric for measuring the total concurrent inflight requests
	globalQueueRequestBacklogLimiter := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: params.Daemon.MetricsNamespace(), Subsystem: "network", Name: "global_inflight_requests",
		Help: "Number of concurrent in-flight http requests",
	})
	globalQueueRequestExecutionDurationLimitCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: params.Daemon.MetricsNamespace(), Subsystem: "network", Name: "global_request_execution_duration_threshold_limit",
		Help: "The metric measures the count of requests that surpassed the limit threshold for execution time",
	})
	params.Daemon.MetricsRegistry().MustRegister(
		globalQueueRequestBacklogLimiter,
		globalQueueRequestExecutionDurationLimitCounter,
	)

	var httpHandler http.Handler = bridge
	httpHandler = network.MakeHTTPBacklogQueueLimiter(
		httpHandler,
		globalQueueRequestBacklogLimiter,
		uint64(cfg.RequestBacklogGlobalQueueLimit),
		params.Logger)
	httpHandler = network.MakeHTTPRequestDurationLimiter(
		httpHandler,
		cfg.MaxRequestExecutionDuration,
		globalQueueRequestExecutionDurationLimitCounter,
		params.Logger)
	httpHandler = http.MaxBytesHandler(httpHandler, maxHTTPRequestSize)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:         []string{},
		AllowOriginRequestFunc: func(*http.Request, string) bool { return true },
		AllowedHeaders:         []string{"*"},
		AllowedMethods:         []string{"GET", "PUT", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
	})

	return Handler{
		bridge:  bridge,
		logger:  params.Logger,
		Handler: corsMiddleware.Handler(httpHandler),
	}
}
