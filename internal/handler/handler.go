package handler

import (
	"counter-go/internal/constants"
	"counter-go/internal/errors"
	"counter-go/internal/interfaces"
	"counter-go/internal/models"
	"counter-go/internal/protocol"

	"go.uber.org/zap"
)

// Handler 把解析后的请求分发到各路由，返回响应与统计用的路由分类
type Handler struct {
	store   interfaces.CounterStore
	metrics interfaces.MetricsCollector
	logger  *zap.Logger
}

func New(store interfaces.CounterStore, metrics interfaces.MetricsCollector, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:   store,
		metrics: metrics,
		logger:  logger.Named("handler"),
	}
}

// Serve 处理一个请求。parseErr 为 ReadRequest 返回的非 I/O 错误。
// 格式错误、方法不允许、未匹配的请求都归入 other。
func (h *Handler) Serve(req *protocol.Request, parseErr error) (*protocol.Response, models.Route) {
	if parseErr != nil {
		return h.errorResponse(parseErr), models.RouteOther
	}
	if !req.IsGet() {
		return h.errorResponse(errors.New(errors.ErrMethodNotAllowed, "method %q", req.Method)), models.RouteOther
	}

	route, key, err := protocol.MatchRoute(req.Target)
	if err != nil {
		return h.errorResponse(err), models.RouteOther
	}

	return h.dispatch(route, key)
}

// dispatch 未知的路由值按未匹配处理
func (h *Handler) dispatch(route models.Route, key int64) (*protocol.Response, models.Route) {
	switch route {
	case models.RouteCount:
		return h.count(key), route
	case models.RoutePeek:
		return h.peek(key), route
	case models.RouteMetrics:
		return h.metricsReport(), route
	case models.RouteRoot:
		return protocol.TextResponse(200, constants.Banner), route
	default:
		return h.errorResponse(errors.New(errors.ErrRouteNotFound, "unhandled route %d", int(route))), models.RouteOther
	}
}

// errorResponse 按错误码生成 JSON 错误响应，未分类的错误按 400 处理
func (h *Handler) errorResponse(err error) *protocol.Response {
	code := errors.CodeOf(err)
	status := code.HTTPStatus()

	var msg string
	switch code {
	case errors.ErrMethodNotAllowed:
		msg = constants.MsgMethodNotAllowed
	case errors.ErrRouteNotFound:
		msg = constants.MsgNotFound
	case errors.ErrCounterOverflow:
		msg = constants.MsgCounterOverflow
	default:
		status, msg = 400, constants.MsgBadRequest
	}
	return h.json(status, models.ErrorBody{Error: msg})
}

func (h *Handler) json(status int, v interface{}) *protocol.Response {
	resp, err := protocol.JSONResponse(status, v)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		return protocol.TextResponse(500, protocol.StatusText(500))
	}
	return resp
}
