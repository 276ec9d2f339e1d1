package exporter

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"eventcli/internal/analytics"
)

// KPIGauges exposes report values as Prometheus gauges. Undefined values are
// not exported.
type KPIGauges struct {
	kpi     *prometheus.GaugeVec
	event   *prometheus.GaugeVec
	channel *prometheus.GaugeVec
	funnel  *prometheus.GaugeVec
}

// NewKPIGauges registers the gauges with reg
func NewKPIGauges(reg prometheus.Registerer) (*KPIGauges, error) {
	g := &KPIGauges{
		kpi: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "eventcli",
			Name:      "kpi",
			Help:      "Headline KPIs of the analyzed registrations",
		}, []string{"metric"}),
		event: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "eventcli",
			Name:      "event",
			Help:      "Per-event statistics",
		}, []string{"event", "metric"}),
		channel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "eventcli",
			Name:      "channel",
			Help:      "Per-channel statistics",
		}, []string{"channel", "metric"}),
		funnel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "eventcli",
			Name:      "funnel_stage",
			Help:      "Registrations reaching each funnel stage",
		}, []string{"stage"}),
	}

	for _, c := range []prometheus.Collector{g.kpi, g.event, g.channel, g.funnel} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register kpi gauge: %w", err)
		}
	}
	return g, nil
}

// Observe sets every gauge from the report
func (g *KPIGauges) Observe(r *analytics.Report) {
	k := r.KPIs
	g.kpi.WithLabelValues("registrations").Set(float64(k.Total))
	g.kpi.WithLabelValues("attended").Set(float64(k.Attended))
	g.kpi.WithLabelValues("no_shows").Set(float64(k.NoShows))
	g.kpi.WithLabelValues("cancelled").Set(float64(k.Cancelled))
	setDefined(g.kpi, k.AttendanceRate, "attendance_rate")
	setDefined(g.kpi, k.NoShowRate, "no_show_rate")
	setDefined(g.kpi, k.CancellationRate, "cancellation_rate")
	setDefined(g.kpi, k.AvgEngagement, "avg_engagement")
	setDefined(g.kpi, k.SurveyRate, "survey_rate")
	setDefined(g.kpi, k.AvgCost, "avg_cost")
	g.kpi.WithLabelValues("total_cost").Set(k.TotalCost)
	setDefined(g.kpi, k.CostPerAttendee, "cost_per_attendee")

	for _, e := range r.Events {
		g.event.WithLabelValues(e.Name, "registrations").Set(float64(e.Registrations))
		setDefined(g.event, e.AttendanceRate, e.Name, "attendance_rate")
		setDefined(g.event, e.CostPerAttendee, e.Name, "cost_per_attendee")
	}
	for _, c := range r.Channels {
		g.channel.WithLabelValues(c.Name, "registrations").Set(float64(c.Registrations))
		setDefined(g.channel, c.AttendanceRate, c.Name, "attendance_rate")
		setDefined(g.channel, c.CostPerAttendee, c.Name, "cost_per_attendee")
	}
	for _, s := range r.Funnel {
		g.funnel.WithLabelValues(s.Name).Set(float64(s.Count))
	}
}

func setDefined(vec *prometheus.GaugeVec, v float64, labels ...string) {
	if analytics.Defined(v) {
		vec.WithLabelValues(labels...).Set(v)
	}
}
