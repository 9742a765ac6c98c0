package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthStatus is the /healthz response.
type HealthStatus struct {
	Status    string   `json:"status"`
	Uptime    string   `json:"uptime"`
	Forms     []string `json:"forms"`
	Renderers []string `json:"renderers"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "ok",
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Forms:     s.orch.Forms().List(),
		Renderers: s.orch.Renderers().List(),
	})
}
