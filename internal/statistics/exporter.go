package statistics

import (
	"github.com/At1ass/tt-riingd/internal/device"
	"github.com/At1ass/tt-riingd/internal/sensors"
	"github.com/At1ass/tt-riingd/internal/state"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "tt_riingd"
)

// Collectors returns one collector per exported area of the runtime state.
func Collectors(readings *sensors.Readings, transport *device.Transport, store *state.Store) []prometheus.Collector {
	return []prometheus.Collector{
		NewSensorCollector(readings),
		NewFanCollector(transport),
		NewControllerCollector(transport),
		NewCurveCollector(store),
	}
}

func Register(registerer prometheus.Registerer, collectors ...prometheus.Collector) {
	registerer.MustRegister(collectors...)
}
