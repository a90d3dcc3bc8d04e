package handler

import (
	"counter-go/internal/models"
	"counter-go/internal/protocol"

	"go.uber.org/zap"
)

func (h *Handler) count(key int64) *protocol.Response {
	perKey, global, err := h.store.Increment(key)
	if err != nil {
		h.logger.Error("increment failed", zap.Int64("id", key), zap.Error(err))
		return h.errorResponse(err)
	}
	return h.json(200, models.CounterReport{ID: key, PerIDCount: perKey, GlobalCount: global})
}

func (h *Handler) peek(key int64) *protocol.Response {
	perKey, global := h.store.Peek(key)
	return h.json(200, models.CounterReport{ID: key, PerIDCount: perKey, GlobalCount: global})
}
