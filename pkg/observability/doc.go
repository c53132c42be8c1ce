/*
Package observability exposes request lifecycle metrics.

Metrics plugs Prometheus collectors into the request hooks:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	client := javelin.New(javelin.WithHooks(m.Hooks()))
	http.Handle("/metrics", promhttp.Handler())
*/
package observability
