package interfaces

import (
	"time"

	"counter-go/internal/models"
)

// MetricsCollector 定义指标收集器接口
type MetricsCollector interface {
	BeginRequest()
	EndRequest()
	RecordRequest(bytesIn, bytesOut int64, latency time.Duration, route models.Route)
	Snapshot() models.MetricsReport
}

// CounterStore 定义计数器存储接口
type CounterStore interface {
	Increment(key int64) (perKey int64, global int64, err error)
	Peek(key int64) (perKey int64, global int64)
}
