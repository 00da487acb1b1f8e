package testingutils

import (
	"context"
	"fmt"
	"github.com/At1ass/tt-riingd/internal/sensors"
	"sync"
)

// MockSensorBackend returns fixed temperatures per sensor id,
// sensors without a value are unavailable.
type MockSensorBackend struct {
	mu     sync.Mutex
	values map[string]float64
	reads  map[string]int
}

func NewMockSensorBackend(values map[string]float64) *MockSensorBackend {
	v := map[string]float64{}
	for id, value := range values {
		v[id] = value
	}
	return &MockSensorBackend{
		values: v,
		reads:  map[string]int{},
	}
}

func (b *MockSensorBackend) ReadTemperature(ctx context.Context, sensor sensors.Sensor) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reads[sensor.Id]++
	value, ok := b.values[sensor.Id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", sensors.ErrSensorUnavailable, sensor.Id)
	}
	return value, nil
}

func (b *MockSensorBackend) Set(id string, value float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[id] = value
}

func (b *MockSensorBackend) Fail(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, id)
}

func (b *MockSensorBackend) Reads(id string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reads[id]
}
