// Package metrics 提供 Prometheus 指标
//
// 使用 promauto 自动注册指标到默认 Registry,
// HTTP 服务通过 /metrics 端点暴露。
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 指标
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInProgress prometheus.Gauge

	// 目录查询指标
	CatalogQueriesTotal   *prometheus.CounterVec
	CatalogQueryDuration  prometheus.Histogram
	CatalogResultSize     prometheus.Histogram

	// 图书变更指标(action: create/update/delete, result: ok/denied/conflict/not_found/invalid/error)
	BookMutationsTotal   *prometheus.CounterVec
	BookMutationDuration *prometheus.HistogramVec

	// 缓存指标
	CacheRequestsTotal *prometheus.CounterVec

	// 熔断器指标
	CircuitBreakerState    *prometheus.GaugeVec
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标
	MessagesPublishedTotal *prometheus.CounterVec
	MessagesConsumedTotal  *prometheus.CounterVec

	initOnce sync.Once
)

// InitMetrics 初始化所有指标, 重复调用安全
func InitMetrics() {
	initOnce.Do(initMetrics)
}

func initMetrics() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP 请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP 请求耗时(秒)",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的 HTTP 请求数",
		},
	)

	CatalogQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "目录列表查询总数",
		},
		[]string{"result"},
	)

	CatalogQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "目录列表查询耗时(秒)",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	CatalogResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_result_size",
			Help:    "目录列表单页返回的图书数量",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	BookMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_mutations_total",
			Help: "图书变更操作总数",
		},
		[]string{"action", "result"},
	)

	BookMutationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "book_mutation_duration_seconds",
			Help:    "图书变更操作耗时(秒)",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"action"},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "缓存请求总数 (result: hit/miss/error)",
		},
		[]string{"cache", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态 (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "经过熔断器的请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "发布到消息队列的消息总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "从消息队列消费的消息总数",
		},
		[]string{"queue", "result"},
	)
}

// ObserveHTTPRequest 记录一次 HTTP 请求
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if HTTPRequestsTotal == nil {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveCatalogQuery 记录一次目录列表查询
func ObserveCatalogQuery(result string, size int, duration time.Duration) {
	if CatalogQueriesTotal == nil {
		return
	}
	CatalogQueriesTotal.WithLabelValues(result).Inc()
	if result == "ok" {
		CatalogQueryDuration.Observe(duration.Seconds())
		CatalogResultSize.Observe(float64(size))
	}
}

// ObserveBookMutation 记录一次图书变更操作
func ObserveBookMutation(action, result string, duration time.Duration) {
	if BookMutationsTotal == nil {
		return
	}
	BookMutationsTotal.WithLabelValues(action, result).Inc()
	BookMutationDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// ObserveCacheRequest 记录一次缓存访问
func ObserveCacheRequest(cache, result string) {
	if CacheRequestsTotal == nil {
		return
	}
	CacheRequestsTotal.WithLabelValues(cache, result).Inc()
}

// SetCircuitBreakerState 更新熔断器状态指标
func SetCircuitBreakerState(name string, state float64) {
	if CircuitBreakerState == nil {
		return
	}
	CircuitBreakerState.WithLabelValues(name).Set(state)
}

// IncCircuitBreakerRequest 记录一次经过熔断器的请求
func IncCircuitBreakerRequest(name, result string) {
	if CircuitBreakerRequests == nil {
		return
	}
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// IncMessagePublished 记录一条已发布的消息
func IncMessagePublished(exchange, routingKey string) {
	if MessagesPublishedTotal == nil {
		return
	}
	MessagesPublishedTotal.WithLabelValues(exchange, routingKey).Inc()
}

// IncMessageConsumed 记录一条已消费的消息
func IncMessageConsumed(queue, result string) {
	if MessagesConsumedTotal == nil {
		return
	}
	MessagesConsumedTotal.WithLabelValues(queue, result).Inc()
}
