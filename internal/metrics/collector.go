package metrics

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"counter-go/internal/models"

	"go.uber.org/zap"
)

// Collector 汇总所有连接的请求统计，写路径全部是原子操作，没有锁
type Collector struct {
	startTime      time.Time
	activeRequests atomic.Int64
	totalRequests  atomic.Int64
	bytesIn        atomic.Int64
	bytesOut       atomic.Int64
	latencySum     atomic.Int64
	minLatency     atomic.Int64 // math.MaxInt64 表示尚未记录
	maxLatency     atomic.Int64
	routeStats     [routeBuckets]atomic.Int64
	logger         *zap.Logger
}

// 路由统计桶: other, count, peek, root
const routeBuckets = 4

func NewCollector(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		startTime: time.Now(),
		logger:    logger.Named("metrics"),
	}
	c.minLatency.Store(math.MaxInt64)
	return c
}

func (c *Collector) BeginRequest() {
	c.activeRequests.Add(1)
}

func (c *Collector) EndRequest() {
	c.activeRequests.Add(-1)
}

// Active 当前正在处理的连接数
func (c *Collector) Active() int64 {
	return c.activeRequests.Load()
}

func (c *Collector) Uptime() time.Duration {
	return time.Since(c.startTime)
}

// RecordRequest 记录一次请求，失败的请求同样记录
func (c *Collector) RecordRequest(bytesIn, bytesOut int64, latency time.Duration, route models.Route) {
	if latency < 0 {
		latency = 0
	}

	// 更新总请求数
	c.totalRequests.Add(1)

	// 更新路由统计
	c.routeStats[route.Bucket()].Add(1)

	// 更新字节数
	c.bytesIn.Add(bytesIn)
	c.bytesOut.Add(bytesOut)

	// 更新延迟，先更新最大值再更新最小值，快照先读最小值，保证读到的 min <= max
	ns := int64(latency)
	c.latencySum.Add(ns)
	storeMax(&c.maxLatency, ns)
	storeMin(&c.minLatency, ns)
}

// Snapshot 逐个字段原子读取，字段之间不保证同一时刻
func (c *Collector) Snapshot() models.MetricsReport {
	total := c.totalRequests.Load()
	report := models.MetricsReport{
		TotalRequests: total,
		TotalBytesIn:  c.bytesIn.Load(),
		TotalBytesOut: c.bytesOut.Load(),
		PerRoute: models.RouteCounts{
			Count: c.routeStats[models.RouteCount].Load(),
			Peek:  c.routeStats[models.RoutePeek].Load(),
			Root:  c.routeStats[models.RouteRoot].Load(),
			Other: c.routeStats[models.RouteOther].Load(),
		},
	}
	if total == 0 {
		return report
	}

	report.AvgLatencyMs = nanosToMillis(c.latencySum.Load() / total)
	if lo := c.minLatency.Load(); lo != math.MaxInt64 {
		report.MinLatencyMs = nanosToMillis(lo)
	}
	report.MaxLatencyMs = nanosToMillis(c.maxLatency.Load())
	return report
}

// LogSummary 输出当前统计，关闭时调用
func (c *Collector) LogSummary() {
	r := c.Snapshot()
	c.logger.Info("request summary",
		zap.String("uptime", FormatUptime(c.Uptime())),
		zap.Int64("total_requests", r.TotalRequests),
		zap.String("bytes_in", FormatBytes(uint64(r.TotalBytesIn))),
		zap.String("bytes_out", FormatBytes(uint64(r.TotalBytesOut))),
		zap.Float64("avg_latency_ms", r.AvgLatencyMs),
		zap.Float64("min_latency_ms", r.MinLatencyMs),
		zap.Float64("max_latency_ms", r.MaxLatencyMs),
	)
}

// storeMin CAS 重试直到成功或当前值已不大于 v
func storeMin(target *atomic.Int64, v int64) {
	for {
		cur := target.Load()
		if v >= cur {
			return
		}
		if target.CompareAndSwap(cur, v) {
			return
		}
	}
}

func storeMax(target *atomic.Int64, v int64) {
	for {
		cur := target.Load()
		if v <= cur {
			return
		}
		if target.CompareAndSwap(cur, v) {
			return
		}
	}
}

func nanosToMillis(ns int64) float64 {
	return float64(ns) / float64(time.Millisecond)
}

// 辅助函数
func FormatBytes(bytes uint64) string {
	const (
		MB = 1024 * 1024
		KB = 1024
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d Bytes", bytes)
	}
}

func FormatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
