package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests 按路由与状态码统计请求数
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "incamp",
		Name:      "http_requests_total",
		Help:      "HTTP 请求总数",
	}, []string{"method", "route", "status"})

	// HTTPLatency 请求耗时分布
	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "incamp",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP 请求耗时（秒）",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// StatusTransitions 问题陈述状态迁移次数
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "incamp",
		Name:      "problem_statement_transitions_total",
		Help:      "问题陈述状态迁移次数",
	}, []string{"from", "to"})

	// LoginAttempts 登录尝试结果
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "incamp",
		Name:      "login_attempts_total",
		Help:      "登录尝试次数（按结果）",
	}, []string{"result"})
)

// RecordTransition 记录一次成功的状态迁移
func RecordTransition(from, to string) {
	StatusTransitions.WithLabelValues(from, to).Inc()
}

// RecordLogin 记录登录结果：success | rejected | timeout | error
func RecordLogin(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
