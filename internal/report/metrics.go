package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"evalgo.org/vcfcompat/models"
)

// NewRegistry returns a registry holding the gauges of one report.
func NewRegistry(r *models.Report) *prometheus.Registry {
	hosts := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vcfcompat_hosts",
			Help: "Number of hosts per compatibility bucket",
		},
		[]string{"bucket"},
	)
	groups := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vcfcompat_model_groups",
			Help: "Number of server model groups per catalog lookup outcome",
		},
		[]string{"result"}, // releases, not_found, not_applied, unresolved
	)
	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vcfcompat_run_info",
			Help: "Identity of the last compatibility check",
		},
		[]string{"run_id", "target_release"},
	)
	lastRun := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vcfcompat_last_run_timestamp_seconds",
			Help: "Time the last compatibility check finished",
		},
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(hosts, groups, info, lastRun)

	for _, b := range models.Buckets {
		hosts.WithLabelValues(string(b)).Set(float64(r.Buckets.Count(b)))
	}
	for _, kind := range []models.ResultKind{models.KindReleases, models.KindNotFound, models.KindNotApplied, models.KindUnresolved} {
		groups.WithLabelValues(string(kind)).Set(0)
	}
	counted := map[string]bool{}
	for _, h := range r.Hosts {
		if counted[h.Model] {
			continue
		}
		counted[h.Model] = true
		groups.WithLabelValues(string(h.Compatibility.Kind)).Inc()
	}
	info.WithLabelValues(r.RunID, r.TargetRelease).Set(1)
	if !r.GeneratedAt.IsZero() {
		lastRun.Set(float64(r.GeneratedAt.Unix()))
	}
	return reg
}

// WriteMetrics writes the report gauges to path in the node_exporter
// textfile format.
func WriteMetrics(path string, r *models.Report) error {
	if err := prometheus.WriteToTextfile(path, NewRegistry(r)); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
