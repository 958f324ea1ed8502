package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 工具调用计数
	ToolInvocationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_invocation_count",
			Help: "Total number of tool invocations",
		},
		[]string{"tool", "status"}, // status: ok, degraded
	)

	// 工具调用延迟（毫秒）
	ToolInvocationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tool_invocation_latency_ms",
			Help:    "Tool invocation latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
		[]string{"tool"},
	)

	// Discovery 响应计数（按触发原因分）
	DiscoveryRequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_request_count",
			Help: "Total number of discovery responses served",
		},
		[]string{"trigger"}, // trigger: list, fallback
	)

	// 每次规划的候选数量
	PlanCandidateCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plan_candidate_count",
			Help:    "Number of candidate actions considered per plan",
			Buckets: prometheus.LinearBuckets(0, 1, 8), // 0..7 candidates
		},
	)

	// 计划缓存命中计数
	PlanCacheCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_cache_count",
			Help: "Plan cache lookups by outcome",
		},
		[]string{"outcome"}, // outcome: hit, miss, error
	)
)

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordToolInvocation 记录一次工具调用及其延迟
func RecordToolInvocation(tool, status string, duration time.Duration) {
	ToolInvocationCount.WithLabelValues(tool, status).Inc()
	ToolInvocationLatency.WithLabelValues(tool).Observe(float64(duration.Milliseconds()))
}

// IncrementDiscovery 增加 discovery 响应计数
func IncrementDiscovery(trigger string) {
	DiscoveryRequestCount.WithLabelValues(trigger).Inc()
}

// ObservePlanCandidates 记录本次规划考虑的候选数
func ObservePlanCandidates(n int) {
	PlanCandidateCount.Observe(float64(n))
}

// IncrementPlanCache 记录缓存命中情况
func IncrementPlanCache(outcome string) {
	PlanCacheCount.WithLabelValues(outcome).Inc()
}
