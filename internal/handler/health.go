package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers load balancer probes.  It deliberately touches neither
// the database nor Redis: a degraded cache must not take the register
// endpoint out of rotation.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
