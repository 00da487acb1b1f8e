package device

import (
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestTransportAddressesControllersOneBased(t *testing.T) {
	// GIVEN
	config := &configuration.Configuration{
		Controllers: []configuration.ControllerConfig{
			{Id: "front"},
			{Id: "rear"},
		},
	}

	// WHEN
	transport := NewTransport(config, (&mockOpener{}).open)

	// THEN
	c, ok := transport.Controller(2)
	assert.True(t, ok)
	assert.Equal(t, "rear", c.Id)
	assert.Equal(t, 2, c.Number)
	_, ok = transport.Controller(0)
	assert.False(t, ok)
	_, ok = transport.Controller(3)
	assert.False(t, ok)
}

func TestTransportOpenAllKeepsFailedControllersDegraded(t *testing.T) {
	// GIVEN
	config := &configuration.Configuration{
		Controllers: []configuration.ControllerConfig{
			{Id: "front"},
			{Id: "rear"},
		},
	}
	opener := &mockOpener{devices: []*testingutils.MockHidDevice{testingutils.NewMockHidDevice()}}
	transport := NewTransport(config, opener.open)

	// WHEN
	transport.OpenAll()

	// THEN
	front, _ := transport.Controller(1)
	rear, _ := transport.Controller(2)
	assert.True(t, front.Connected())
	assert.True(t, rear.Degraded())

	transport.CloseAll()
	assert.False(t, front.Connected())
}
