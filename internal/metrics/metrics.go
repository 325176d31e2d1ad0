package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "genesis_dashboard"

	StatusSuccess = "success"
	StatusError   = "error"
)

type Metrics struct {
	requests      *prometheus.CounterVec
	requestTime   *prometheus.HistogramVec
	queryDuration *prometheus.HistogramVec
	rowsRendered  *prometheus.HistogramVec
	rangeSkipped  prometheus.Counter
}

// New crea las métricas y las registra en el registerer dado
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		requestTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "mongo_query_duration_seconds",
			Help:      "Mongo query latency by query and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query", "status"}),
		rowsRendered: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "rows_rendered",
			Help:      "Rows left after the filter pipeline, by page variant",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"variant"}),
		rangeSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "range_filter_skipped_total",
			Help:      "Numeric range filters skipped because the column had no usable range",
		}),
	}

	collectors := []prometheus.Collector{
		m.requests, m.requestTime, m.queryDuration, m.rowsRendered, m.rangeSkipped,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, errors.Join(errors.New("failed to register metric"), err)
		}
	}
	return m, nil
}

// ObserveQuery registra la duración de una consulta a Mongo
func (m *Metrics) ObserveQuery(query string, start time.Time, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.queryDuration.WithLabelValues(query, status).Observe(time.Since(start).Seconds())
}

// ObserveRows registra cuántas filas quedaron después de los filtros
func (m *Metrics) ObserveRows(variant string, rows int) {
	m.rowsRendered.WithLabelValues(variant).Observe(float64(rows))
}

// RangeSkipped cuenta un filtro numérico omitido
func (m *Metrics) RangeSkipped() {
	m.rangeSkipped.Inc()
}

// Middleware mide cada request de gin por ruta registrada
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestTime.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
