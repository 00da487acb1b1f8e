package api

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

func registerConfigEndpoints(rest *echo.Echo, h *handlers) {
	rest.POST("/config/reload/", h.reloadConfig)
}

func (h *handlers) reloadConfig(c echo.Context) error {
	result, err := h.service.ReloadConfig()
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, result, indentationChar)
}
