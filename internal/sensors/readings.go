package sensors

import (
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Readings holds the last successful temperature of every sensor.
type Readings struct {
	values cmap.ConcurrentMap[string, float64]
}

func NewReadings() *Readings {
	return &Readings{
		values: cmap.New[float64](),
	}
}

func (r *Readings) Set(id string, temp float64) {
	r.values.Set(id, temp)
}

func (r *Readings) Get(id string) (float64, bool) {
	return r.values.Get(id)
}

// All returns a copy of all readings.
func (r *Readings) All() map[string]float64 {
	return r.values.Items()
}
