package api

import (
	"github.com/At1ass/tt-riingd/internal/curves"
	"github.com/labstack/echo/v4"
	"io"
	"net/http"
)

type fanCurves struct {
	Active string                  `json:"active"`
	Curves map[string]curves.Curve `json:"curves"`
}

type activeCurveRequest struct {
	Name string `json:"name"`
}

func registerFanEndpoints(rest *echo.Echo, h *handlers) {
	rest.GET("/fan/", h.getFans)

	fan := rest.Group("/controller/:" + urlParamController + "/fan/:" + urlParamFan)
	fan.GET("/", h.getFan)
	fan.PUT("/active/", h.switchActiveCurve)
	fan.GET("/curve/", h.getFanCurves)
	fan.PUT("/curve/:"+urlParamName+"/", h.updateCurveData)
}

// returns the runtime state of all fans
func (h *handlers) getFans(c echo.Context) error {
	data, err := h.service.Fans()
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

// returns the runtime state of one fan
func (h *handlers) getFan(c echo.Context) error {
	controller, fan, err := parseFanKey(c)
	if err != nil {
		return returnError(c, err)
	}
	data, err := h.service.Fan(controller, fan)
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func (h *handlers) getFanCurves(c echo.Context) error {
	controller, fan, err := parseFanKey(c)
	if err != nil {
		return returnError(c, err)
	}
	data, err := h.service.Fan(controller, fan)
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, fanCurves{Active: data.ActiveCurve, Curves: data.Curves}, indentationChar)
}

func (h *handlers) switchActiveCurve(c echo.Context) error {
	controller, fan, err := parseFanKey(c)
	if err != nil {
		return returnError(c, err)
	}
	var request activeCurveRequest
	if err := c.Bind(&request); err != nil || request.Name == "" {
		return returnResult(c, http.StatusBadRequest, "Bad Request", "expected {\"name\": <curve>}")
	}
	if err := h.service.SwitchActiveCurve(controller, fan, request.Name); err != nil {
		return returnError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// the body is the curve in its JSON wire form, e.g. {"t":"Constant","c":50}
func (h *handlers) updateCurveData(c echo.Context) error {
	controller, fan, err := parseFanKey(c)
	if err != nil {
		return returnError(c, err)
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return returnResult(c, http.StatusBadRequest, "Bad Request", err.Error())
	}
	if err := h.service.UpdateCurveData(controller, fan, c.Param(urlParamName), string(body)); err != nil {
		return returnError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
