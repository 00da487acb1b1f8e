package statistics

import (
	"github.com/At1ass/tt-riingd/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	readings    *sensors.Readings
	temperature *prometheus.Desc
}

func NewSensorCollector(readings *sensors.Readings) *SensorCollector {
	return &SensorCollector{
		readings: readings,
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "temperature_celsius"),
			"Last successfully read temperature of the sensor",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.temperature
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for id, value := range collector.readings.All() {
		ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, value, id)
	}
}
