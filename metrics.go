package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studyforge_client",
			Name:      "messages_sent_total",
			Help:      "Chat messages confirmed by the server.",
		},
	)

	messagesRolledBackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studyforge_client",
			Name:      "messages_rolled_back_total",
			Help:      "Optimistic messages removed after a failed send.",
		},
	)

	documentsUploadedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studyforge_client",
			Name:      "documents_uploaded_total",
			Help:      "Documents accepted by the upload endpoint.",
		},
	)

	staleResponsesDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studyforge_client",
			Name:      "stale_responses_dropped_total",
			Help:      "Send responses discarded because the active session changed mid-flight.",
		},
	)
)
