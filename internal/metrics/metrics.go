package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run outcomes
const (
	OutcomeSolved     = "solved"
	OutcomeInfeasible = "infeasible"
	OutcomeRejected   = "rejected" // The plan failed verification
	OutcomeFailed     = "failed"
)

// Metrics holds the collectors of a planning run on a private registry
type Metrics struct {
	registry      *prometheus.Registry
	runs          *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	variables     prometheus.Gauge
	constraints   prometheus.Gauge
	objective     prometheus.Gauge
	fairnessGap   prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fairtable_runs_total",
		Help: "Planning runs by solver backend and outcome",
	}, []string{"backend", "outcome"})

	solveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fairtable_solve_duration_seconds",
		Help:    "Time spent building and solving the MIP",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"backend"})

	variables := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fairtable_model_variables",
		Help: "Variables of the last MIP built",
	})

	constraints := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fairtable_model_constraints",
		Help: "Constraints of the last MIP built",
	})

	objective := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fairtable_plan_objective",
		Help: "Objective value of the last plan",
	})

	fairnessGap := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fairtable_plan_fairness_gap",
		Help: "U - L of the last plan",
	})

	registry.MustRegister(runs, solveDuration, variables, constraints, objective, fairnessGap)

	return &Metrics{
		registry:      registry,
		runs:          runs,
		solveDuration: solveDuration,
		variables:     variables,
		constraints:   constraints,
		objective:     objective,
		fairnessGap:   fairnessGap,
	}
}

func (m *Metrics) ObserveRun(backend, outcome string, duration time.Duration) {
	m.runs.WithLabelValues(backend, outcome).Inc()
	m.solveDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

func (m *Metrics) ObserveModel(variables, constraints uint64) {
	m.variables.Set(float64(variables))
	m.constraints.Set(float64(constraints))
}

func (m *Metrics) ObservePlan(objective, lower, upper float64) {
	m.objective.Set(objective)
	m.fairnessGap.Set(upper - lower)
}

// WriteToTextfile dumps the registry in the text exposition format, for node_exporter's textfile collector
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
