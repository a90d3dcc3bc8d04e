package models

// Route 请求路径分类，仅用于统计
type Route int

const (
	RouteOther Route = iota
	RouteCount
	RoutePeek
	RouteRoot
	RouteMetrics
)

func (r Route) String() string {
	switch r {
	case RouteCount:
		return "count"
	case RoutePeek:
		return "peek"
	case RouteRoot:
		return "root"
	case RouteMetrics:
		return "metrics"
	default:
		return "other"
	}
}

// Bucket 返回统计桶，metrics 与未匹配请求共用 other 桶
func (r Route) Bucket() Route {
	switch r {
	case RouteCount, RoutePeek, RouteRoot:
		return r
	default:
		return RouteOther
	}
}
