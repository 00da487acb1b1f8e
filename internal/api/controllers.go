package api

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

func registerControllerEndpoints(rest *echo.Echo, h *handlers) {
	group := rest.Group("/controller")

	group.GET("/", h.getControllers)
	group.GET("/:"+urlParamController+"/firmware/", h.getFirmwareVersion)
}

// returns the connection state and fan telemetry of all controllers
func (h *handlers) getControllers(c echo.Context) error {
	data, err := h.service.Controllers()
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func (h *handlers) getFirmwareVersion(c echo.Context) error {
	controller, err := parseByteParam(c, urlParamController)
	if err != nil {
		return returnError(c, err)
	}
	version, err := h.service.GetFirmwareVersion(controller)
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, map[string]string{"version": version}, indentationChar)
}
