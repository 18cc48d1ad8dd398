package poller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "studyforge_client",
		Name:      "poll_attempts_total",
		Help:      "Status poll attempts issued, including failed ones.",
	})

	pollCompletionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "studyforge_client",
		Name:      "poll_completions_total",
		Help:      "Poll loops that observed a terminal status.",
	})

	pollTimeoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "studyforge_client",
		Name:      "poll_timeouts_total",
		Help:      "Poll loops abandoned after exhausting the attempt bound.",
	})
)
