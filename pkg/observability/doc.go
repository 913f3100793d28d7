/*
Package observability turns engine lifecycle hooks into logs and Prometheus metrics.

Hooks from several sources are combined with Merge:

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	hooks := observability.Merge(metrics.Hooks(), observability.LogHooks(logger))
	eng, err := kinetic.New(kinetic.WithLifecycleHooks(hooks))
*/
package observability
