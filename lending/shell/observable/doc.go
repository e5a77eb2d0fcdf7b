// Package observable decorates lending command handlers with metrics, tracing and logging.
//
// Handlers are wrapped at wiring time, so the core handlers stay free of observability:
//
//	coreHandler := checkout.NewCommandHandler(j, policy)
//
//	handler, err := observable.NewCommandWrapper[checkout.Command](
//		coreHandler,
//		observable.WithCommandMetrics[checkout.Command](metricsCollector),
//		observable.WithCommandTracing[checkout.Command](tracingCollector),
//		observable.WithCommandContextualLogging[checkout.Command](contextualLogger),
//	)
//
// A refused checkout is a completed command: it is logged at info level and counted by outcome kind,
// not as an error.
package observable
