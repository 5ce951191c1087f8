package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "adpilot"

var (
	gatewayCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "calls_total",
			Help:      "Count of external campaign API calls by operation and result.",
		},
		[]string{"operation", "result"},
	)
	controllerActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "controller",
			Name:      "actions_total",
			Help:      "Count of mutating actions issued by the controller.",
		},
		[]string{"action", "result"},
	)
	campaignErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "controller",
			Name:      "campaign_errors_total",
			Help:      "Count of campaigns skipped in a tick because of an error.",
		},
		[]string{"loop", "kind"},
	)
	tickDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "tick_duration_seconds",
			Help:      "Duration of one scheduler tick.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"loop"},
	)
	pendingIncrements = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "controller",
			Name:      "ready_increments",
			Help:      "Number of ready pending increments seen by the last drain.",
		},
	)
)

var registerMetrics sync.Once

// Register all metrics with the given registerer.
func Register(reg prometheus.Registerer) {
	registerMetrics.Do(func() {
		reg.MustRegister(gatewayCalls)
		reg.MustRegister(controllerActions)
		reg.MustRegister(campaignErrors)
		reg.MustRegister(tickDuration)
		reg.MustRegister(pendingIncrements)
	})
}

// RecordGatewayCall counts one call to the external campaign API.
func RecordGatewayCall(operation string, err error) {
	gatewayCalls.WithLabelValues(operation, result(err)).Inc()
}

// RecordAction counts one mutating decision of the controller.
func RecordAction(action string, success bool) {
	res := "success"
	if !success {
		res = "failure"
	}
	controllerActions.WithLabelValues(action, res).Inc()
}

// RecordCampaignError counts a campaign skipped by a loop.
func RecordCampaignError(loop, kind string) {
	campaignErrors.WithLabelValues(loop, kind).Inc()
}

// ObserveTick records how long a scheduler tick took.
func ObserveTick(loop string, d time.Duration) {
	tickDuration.WithLabelValues(loop).Observe(d.Seconds())
}

// SetReadyIncrements reports the size of the last drained batch.
func SetReadyIncrements(n int) {
	pendingIncrements.Set(float64(n))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
