package handler

import "counter-go/internal/protocol"

// metricsReport 返回当前快照，本次请求在响应写出后才会被记录
func (h *Handler) metricsReport() *protocol.Response {
	return h.json(200, h.metrics.Snapshot())
}
