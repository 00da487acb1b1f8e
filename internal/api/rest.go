package api

import (
	"errors"
	"github.com/At1ass/tt-riingd/internal/controlplane"
	"github.com/At1ass/tt-riingd/internal/curves"
	"github.com/At1ass/tt-riingd/internal/state"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"net/http"
	"strconv"
)

const (
	urlParamController = "controller"
	urlParamFan        = "fan"
	urlParamName       = "name"
	indentationChar    = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// CreateRestService creates the REST frontend of the control plane.
// Request metrics are registered with the given registerer.
func CreateRestService(service *controlplane.Service, registerer prometheus.Registerer) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "tt_riingd",
		Subsystem:  "api",
		Registerer: registerer,
	}))

	echoRest.GET("/alive/", isAlive)

	h := &handlers{service: service}
	registerControllerEndpoints(echoRest, h)
	registerFanEndpoints(echoRest, h)
	registerSensorEndpoints(echoRest, h)
	registerConfigEndpoints(echoRest, h)

	return echoRest
}

type handlers struct {
	service *controlplane.Service
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// parseFanKey reads the controller and fan path parameters
func parseFanKey(c echo.Context) (controller uint8, fan uint8, err error) {
	controller, err = parseByteParam(c, urlParamController)
	if err != nil {
		return 0, 0, err
	}
	fan, err = parseByteParam(c, urlParamFan)
	return controller, fan, err
}

func parseByteParam(c echo.Context, name string) (uint8, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 8)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+": "+c.Param(name))
	}
	return uint8(value), nil
}

func returnResult(c echo.Context, status int, name string, message string) error {
	return c.JSONPretty(status, &Result{
		Name:    name,
		Message: message,
	}, indentationChar)
}

// returnError maps control plane errors to their HTTP status
func returnError(c echo.Context, e error) error {
	var httpErr *echo.HTTPError
	if errors.As(e, &httpErr) {
		return returnResult(c, httpErr.Code, "Bad Request", httpErr.Message.(string))
	}

	var validationErr *curves.ValidationError
	switch {
	case errors.As(e, &validationErr):
		return returnResult(c, http.StatusBadRequest, "Validation Error", e.Error())
	case errors.Is(e, state.ErrUnknownCurve),
		errors.Is(e, state.ErrUnknownFan),
		errors.Is(e, controlplane.ErrUnknownController):
		return returnResult(c, http.StatusNotFound, "Not found", e.Error())
	case errors.Is(e, controlplane.ErrShuttingDown):
		return returnResult(c, http.StatusServiceUnavailable, "Shutting down", e.Error())
	}
	return returnResult(c, http.StatusInternalServerError, "Unknown Error", e.Error())
}
