package api

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

func registerSensorEndpoints(rest *echo.Echo, h *handlers) {
	group := rest.Group("/sensor")

	group.GET("/", h.getTemperatures)
}

// returns the last temperature of every sensor
func (h *handlers) getTemperatures(c echo.Context) error {
	data, err := h.service.GetTemperatures()
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
