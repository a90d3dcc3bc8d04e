package metrics

import (
	"counter-go/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "counter"

// PrometheusCollector 在每次采集时读取 Collector 快照并导出
type PrometheusCollector struct {
	source *Collector

	requests *prometheus.Desc
	bytesIn  *prometheus.Desc
	bytesOut *prometheus.Desc
	latency  *prometheus.Desc
	routes   *prometheus.Desc
	active   *prometheus.Desc
	uptime   *prometheus.Desc
}

func NewPrometheusCollector(source *Collector) *PrometheusCollector {
	return &PrometheusCollector{
		source: source,
		requests: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "requests_total"),
			"Total requests handled, including failed ones.", nil, nil),
		bytesIn: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "bytes_in_total"),
			"Request bytes read from clients.", nil, nil),
		bytesOut: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "bytes_out_total"),
			"Response bytes written to clients.", nil, nil),
		latency: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "latency_milliseconds"),
			"Request latency statistics in milliseconds.", []string{"stat"}, nil),
		routes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "route_requests_total"),
			"Requests per route bucket.", []string{"route"}, nil),
		active: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "active_connections"),
			"Connections currently being handled.", nil, nil),
		uptime: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "uptime_seconds"),
			"Seconds since the collector was created.", nil, nil),
	}
}

func (p *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- p.requests
	ch <- p.bytesIn
	ch <- p.bytesOut
	ch <- p.latency
	ch <- p.routes
	ch <- p.active
	ch <- p.uptime
}

func (p *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	r := p.source.Snapshot()

	ch <- prometheus.MustNewConstMetric(p.requests, prometheus.CounterValue, float64(r.TotalRequests))
	ch <- prometheus.MustNewConstMetric(p.bytesIn, prometheus.CounterValue, float64(r.TotalBytesIn))
	ch <- prometheus.MustNewConstMetric(p.bytesOut, prometheus.CounterValue, float64(r.TotalBytesOut))

	ch <- prometheus.MustNewConstMetric(p.latency, prometheus.GaugeValue, r.AvgLatencyMs, "avg")
	ch <- prometheus.MustNewConstMetric(p.latency, prometheus.GaugeValue, r.MinLatencyMs, "min")
	ch <- prometheus.MustNewConstMetric(p.latency, prometheus.GaugeValue, r.MaxLatencyMs, "max")

	for _, rc := range []struct {
		route models.Route
		count int64
	}{
		{models.RouteCount, r.PerRoute.Count},
		{models.RoutePeek, r.PerRoute.Peek},
		{models.RouteRoot, r.PerRoute.Root},
		{models.RouteOther, r.PerRoute.Other},
	} {
		ch <- prometheus.MustNewConstMetric(p.routes, prometheus.CounterValue, float64(rc.count), rc.route.String())
	}

	ch <- prometheus.MustNewConstMetric(p.active, prometheus.GaugeValue, float64(p.source.Active()))
	ch <- prometheus.MustNewConstMetric(p.uptime, prometheus.GaugeValue, p.source.Uptime().Seconds())
}
