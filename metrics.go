package kinvey

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kinvey_client",
			Name:      "requests_dispatched_total",
			Help:      "Requests executed, labeled by data policy and HTTP method.",
		},
		[]string{"policy", "method"},
	)

	syncEntriesWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kinvey_client",
			Name:      "sync_entries_written_total",
			Help:      "Pending mutations booked into the sync collection by SyncNotifier.",
		},
		[]string{"collection"},
	)

	deltaSetBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kinvey_client",
			Name:      "deltaset_batches_total",
			Help:      "Concurrent id-batch fetches issued by a DeltaSetRequest.",
		},
		[]string{"collection"},
	)
)
