package device

import (
	"github.com/At1ass/tt-riingd/internal/configuration"
	"github.com/At1ass/tt-riingd/internal/ui"
)

// Transport holds one Controller per configured controller, addressed by
// its 1-based position in the configuration.
type Transport struct {
	controllers []*Controller
}

func NewTransport(config *configuration.Configuration, opener Opener) *Transport {
	t := &Transport{}
	for i, c := range config.Controllers {
		t.controllers = append(t.controllers, NewController(i+1, c, opener))
	}
	return t
}

// Controller returns the controller with the given 1-based number.
func (t *Transport) Controller(number int) (*Controller, bool) {
	if number < 1 || number > len(t.controllers) {
		return nil, false
	}
	return t.controllers[number-1], true
}

func (t *Transport) Controllers() []*Controller {
	return t.controllers
}

// OpenAll connects all controllers. Controllers that fail to open stay degraded
// and are retried by later operations, so this never fails as a whole.
func (t *Transport) OpenAll() {
	for _, c := range t.controllers {
		if err := c.Open(); err != nil {
			continue
		}
		ui.Info("Controller %d (%s) opened", c.Number, c.Id)
	}
}

func (t *Transport) CloseAll() {
	for _, c := range t.controllers {
		if err := c.Close(); err != nil {
			ui.Warning("Error closing controller %d: %v", c.Number, err)
		}
	}
}
