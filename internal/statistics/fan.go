package statistics

import (
	"github.com/At1ass/tt-riingd/internal/device"
	"github.com/prometheus/client_golang/prometheus"
	"strconv"
)

const fanSubsystem = "fan"

type FanCollector struct {
	transport *device.Transport
	speed     *prometheus.Desc
	rpm       *prometheus.Desc
	avgRpm    *prometheus.Desc
}

func NewFanCollector(transport *device.Transport) *FanCollector {
	labels := []string{"controller", "fan"}
	return &FanCollector{
		transport: transport,
		speed: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "speed_percent"),
			"Last commanded speed of the fan",
			labels, nil,
		),
		rpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "rpm"),
			"Last RPM reported by the fan",
			labels, nil,
		),
		avgRpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "rpm_avg"),
			"Rolling average of the RPM reported by the fan",
			labels, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.speed
	ch <- collector.rpm
	ch <- collector.avgRpm
}

// Collect implements required collect function for all prometheus collectors
func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	for _, c := range collector.transport.Controllers() {
		controllerLabel := strconv.Itoa(c.Number)
		for _, t := range c.Telemetry() {
			fanLabel := strconv.Itoa(t.Fan)
			ch <- prometheus.MustNewConstMetric(collector.speed, prometheus.GaugeValue, float64(t.Speed), controllerLabel, fanLabel)
			ch <- prometheus.MustNewConstMetric(collector.rpm, prometheus.GaugeValue, float64(t.Rpm), controllerLabel, fanLabel)
			ch <- prometheus.MustNewConstMetric(collector.avgRpm, prometheus.GaugeValue, t.AvgRpm, controllerLabel, fanLabel)
		}
	}
}
