// Package metrics holds the service's Prometheus collectors. Register must be
// called once from the composition root; counters increment safely even when
// left unregistered (unit tests).
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OffersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "offers_created_total",
			Help: "Total number of offers created",
		},
	)

	OffersSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "offers_submitted_total",
			Help: "Total number of offers submitted for approval",
		},
	)

	ApprovalDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_decisions_total",
			Help: "Total number of approval decisions recorded",
		},
		[]string{"action"},
	)

	OffersSignedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "offers_signed_total",
			Help: "Total number of offers signed",
		},
	)

	NotificationsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of workflow notifications published",
		},
		[]string{"kind"},
	)
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		OffersCreatedTotal,
		OffersSubmittedTotal,
		ApprovalDecisionsTotal,
		OffersSignedTotal,
		NotificationsSentTotal,
	)
}
