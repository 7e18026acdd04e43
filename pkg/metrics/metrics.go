// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型速记：
// - Counter（计数器）：只增不减，如HTTP请求总数（以_total结尾）
// - Gauge（仪表盘）：可增可减的瞬时值，如处理中的请求数
// - Histogram（直方图）：观测值分布，如请求耗时（自动计算P50/P90/P99）
//
// 使用方式：
// 1. 启动时调用metrics.InitMetrics()
// 2. 通过promhttp.Handler()暴露/metrics端点
// 3. 业务代码直接操作导出的指标变量
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册panic）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method（GET/POST）、path（路由模板）、status（200/403/404…）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（秒）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 图书目录业务指标

	// BooksCreatedTotal 图书创建总数
	BooksCreatedTotal prometheus.Counter

	// BooksDeletedTotal 图书删除总数
	BooksDeletedTotal prometheus.Counter

	// BookMutationsDeniedTotal 被权限策略拒绝的写操作总数
	BookMutationsDeniedTotal prometheus.Counter

	// RelationPatchesTotal 用户-图书关系更新总数
	// 标签：field（like/in_bookmarks/rate）
	RelationPatchesTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s，覆盖CRUD服务的耗时范围
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	BooksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "books_created_total",
			Help: "图书创建总数",
		},
	)

	BooksDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "books_deleted_total",
			Help: "图书删除总数",
		},
	)

	BookMutationsDeniedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "book_mutations_denied_total",
			Help: "被权限策略拒绝的图书写操作总数",
		},
	)

	RelationPatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relation_patches_total",
			Help: "用户-图书关系更新总数",
		},
		[]string{"field"},
	)
}
