package statistics

import (
	"github.com/At1ass/tt-riingd/internal/device"
	"github.com/prometheus/client_golang/prometheus"
	"strconv"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	transport *device.Transport
	connected *prometheus.Desc
}

func NewControllerCollector(transport *device.Transport) *ControllerCollector {
	return &ControllerCollector{
		transport: transport,
		connected: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "connected"),
			"1 if the controller is connected, 0 while it is degraded",
			[]string{"controller", "id"}, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.connected
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	for _, c := range collector.transport.Controllers() {
		value := 0.0
		if c.Connected() {
			value = 1
		}
		ch <- prometheus.MustNewConstMetric(collector.connected, prometheus.GaugeValue, value, strconv.Itoa(c.Number), c.Id)
	}
}
