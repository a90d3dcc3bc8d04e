package protocol

import (
	"strconv"
	"strings"

	"counter-go/internal/errors"
	"counter-go/internal/models"
)

const (
	countPrefix = "/count/"
	peekPrefix  = "/peek/"
	rootPath    = "/"
	metricsPath = "/metrics"
)

// MatchRoute 按路径匹配路由并解析 key。
// 前缀匹配但 key 不是整数时返回 ErrMalformedRequest，未匹配返回 ErrRouteNotFound。
func MatchRoute(target string) (models.Route, int64, error) {
	path := target
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	switch {
	case strings.HasPrefix(path, countPrefix):
		key, err := parseKey(path[len(countPrefix):])
		if err != nil {
			return models.RouteOther, 0, err
		}
		return models.RouteCount, key, nil
	case strings.HasPrefix(path, peekPrefix):
		key, err := parseKey(path[len(peekPrefix):])
		if err != nil {
			return models.RouteOther, 0, err
		}
		return models.RoutePeek, key, nil
	case path == rootPath:
		return models.RouteRoot, 0, nil
	case path == metricsPath:
		return models.RouteMetrics, 0, nil
	}
	return models.RouteOther, 0, errors.New(errors.ErrRouteNotFound, "no route for %q", path)
}

func parseKey(s string) (int64, error) {
	key, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrMalformedRequest, err, "invalid id")
	}
	return key, nil
}
