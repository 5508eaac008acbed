// Package metrics holds the Prometheus instruments of the registration
// service.  All collectors are registered with the global registry, so
// serving promhttp.Handler() is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

var (
	WizardsStartedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "registration_wizards_started_total",
			Help: "Cumulative number of registration wizards started.",
		})

	FieldUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_field_updates_total",
			Help: "Cumulative number of field updates, by field name.",
		}, []string{"field"})

	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_submissions_total",
			Help: "Cumulative number of step submissions, by result.",
		}, []string{"result"})

	WizardsCancelledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "registration_wizards_cancelled_total",
			Help: "Cumulative number of registration wizards cancelled.",
		})
)

func init() {
	prometheus.MustRegister(
		WizardsStartedTotal,
		FieldUpdatesTotal,
		SubmissionsTotal,
		WizardsCancelledTotal,
	)
}
