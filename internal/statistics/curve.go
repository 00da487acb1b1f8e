package statistics

import (
	"github.com/At1ass/tt-riingd/internal/state"
	"github.com/prometheus/client_golang/prometheus"
	"strconv"
)

const subsystemCurve = "curve"

// CurveCollector exposes which curve is active on every fan.
type CurveCollector struct {
	store  *state.Store
	active *prometheus.Desc
}

func NewCurveCollector(store *state.Store) *CurveCollector {
	return &CurveCollector{
		store: store,
		active: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemCurve, "active"),
			"1 for the curve that is currently active on the fan",
			[]string{"controller", "fan", "curve"}, nil,
		),
	}
}

func (collector *CurveCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.active
}

// Collect implements required collect function for all prometheus collectors
func (collector *CurveCollector) Collect(ch chan<- prometheus.Metric) {
	for _, fan := range collector.store.Snapshot() {
		ch <- prometheus.MustNewConstMetric(collector.active, prometheus.GaugeValue, 1,
			strconv.Itoa(int(fan.Controller)), strconv.Itoa(int(fan.Fan)), fan.ActiveCurve)
	}
}
