package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for the ERP core operations.
type Collector struct {
	deletesTotal        *prometheus.CounterVec
	deleteDuration      *prometheus.HistogramVec
	deleteConflicts     prometheus.Counter
	refcodeAttempts     prometheus.Histogram
	refcodeFallbacks    prometheus.Counter
	invitationsIssued   prometheus.Counter
	invitationsAccepted prometheus.Counter
	invitationRaces     prometheus.Counter
	notifyFailures      prometheus.Counter
	fileCleanupFailures prometheus.Counter
}

// NewCollector creates and registers all core metrics against the given
// registerer. Tests pass a fresh registry to avoid duplicate registration.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		deletesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "erp_aggregate_deletes_total",
				Help: "Total number of completed aggregate root deletions",
			},
			[]string{"entity"},
		),
		deleteDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "erp_aggregate_delete_duration_ms",
				Help:    "Duration of aggregate root deletions in milliseconds",
				Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
			},
			[]string{"entity"},
		),
		deleteConflicts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "erp_aggregate_delete_conflicts_total",
				Help: "Deletions blocked by dependent records",
			},
		),
		refcodeAttempts: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "erp_refcode_attempts",
				Help:    "Number of candidate codes tried per reference code generation",
				Buckets: []float64{1, 2, 3, 5, 10, 25, 50, 100},
			},
		),
		refcodeFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "erp_refcode_fallbacks_total",
				Help: "Reference code generations that exhausted all attempts",
			},
		),
		invitationsIssued: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "erp_invitations_issued_total",
				Help: "Tender invitations issued",
			},
		),
		invitationsAccepted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "erp_invitations_accepted_total",
				Help: "Tender invitations accepted",
			},
		),
		invitationRaces: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "erp_invitation_accept_races_total",
				Help: "Accept attempts that lost the conditional update",
			},
		),
		notifyFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "erp_notify_failures_total",
				Help: "Invitation emails that could not be sent",
			},
		),
		fileCleanupFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "erp_file_cleanup_failures_total",
				Help: "Best-effort attachment file deletions that failed",
			},
		),
	}
}

// ObserveDelete records one completed deletion of the given entity.
func (c *Collector) ObserveDelete(entity string, d time.Duration) {
	c.deletesTotal.WithLabelValues(entity).Inc()
	c.deleteDuration.WithLabelValues(entity).Observe(float64(d.Microseconds()) / 1000.0)
}

func (c *Collector) DeleteConflict() { c.deleteConflicts.Inc() }

// RefcodeGenerated records how many candidates a generation consumed.
func (c *Collector) RefcodeGenerated(attempts int) {
	c.refcodeAttempts.Observe(float64(attempts))
}

func (c *Collector) RefcodeFallback() { c.refcodeFallbacks.Inc() }

func (c *Collector) InvitationIssued()   { c.invitationsIssued.Inc() }
func (c *Collector) InvitationAccepted() { c.invitationsAccepted.Inc() }
func (c *Collector) InvitationRace()     { c.invitationRaces.Inc() }

func (c *Collector) NotifyFailure()      { c.notifyFailures.Inc() }
func (c *Collector) FileCleanupFailure() { c.fileCleanupFailures.Inc() }
