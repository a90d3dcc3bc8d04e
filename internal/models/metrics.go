package models

// RouteCounts 各路由请求数，metrics 路由计入 other
type RouteCounts struct {
	Count int64 `json:"count"`
	Peek  int64 `json:"peek"`
	Root  int64 `json:"root"`
	Other int64 `json:"other"`
}

// Sum 返回各路由请求数之和
func (r RouteCounts) Sum() int64 {
	return r.Count + r.Peek + r.Root + r.Other
}

// MetricsReport 是 /metrics 的响应体
type MetricsReport struct {
	TotalRequests int64       `json:"totalRequests"`
	TotalBytesIn  int64       `json:"totalBytesIn"`
	TotalBytesOut int64       `json:"totalBytesOut"`
	AvgLatencyMs  float64     `json:"avgLatencyMs"`
	MinLatencyMs  float64     `json:"minLatencyMs"`
	MaxLatencyMs  float64     `json:"maxLatencyMs"`
	PerRoute      RouteCounts `json:"perRoute"`
}

// CounterReport 是 /count 与 /peek 的响应体
type CounterReport struct {
	ID          int64 `json:"id"`
	PerIDCount  int64 `json:"perIdCount"`
	GlobalCount int64 `json:"globalCount"`
}

type ErrorBody struct {
	Error string `json:"error"`
}
