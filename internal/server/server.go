package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/internal/config"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/renderers/vanilla"
)

// CSRFField is the hidden input carrying the CSRF token.
const CSRFField = "_csrf"

// Server wires the orchestrator into an echo instance.
type Server struct {
	echo    *echo.Echo
	orch    *orchestrator.Orchestrator
	logger  *zap.Logger
	cfg     config.Config
	started time.Time
}

// New builds the server and registers every route.
func New(cfg config.Config, orch *orchestrator.Orchestrator, logger *zap.Logger) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if err := orch.Err(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = errorHandler(logger)

	s := &Server{echo: e, orch: orch, logger: logger, cfg: cfg, started: time.Now()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(logger))
	if cfg.CSRF {
		e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup:    "form:" + CSRFField,
			CookieName:     CSRFField,
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSameSite: http.SameSiteStrictMode,
			Skipper:        skipCSRF,
		}))
	}

	s.routes()
	return s, nil
}

func skipCSRF(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == "/healthz" || strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, AssetsPrefix+"/")
}

func (s *Server) routes() {
	e := s.echo
	e.GET("/healthz", s.health)
	e.StaticFS(AssetsPrefix, vanilla.AssetsFS())

	names := s.orch.Forms().List()
	if len(names) > 0 {
		first := "/" + names[0]
		e.GET("/", func(c echo.Context) error {
			return c.Redirect(http.StatusFound, first)
		})
	}
	for _, name := range names {
		e.GET("/"+name, s.showForm(name))
		e.POST("/"+name, s.submitForm(name))
	}

	api := e.Group("/api/forms")
	api.GET("", s.listForms)
	api.GET("/:name/schema", s.formSchema)
	api.POST("/:name/validate", s.validateForm)
	api.PATCH("/:name/state", s.patchState)
}

// Handler exposes the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.cfg.Addr))
	if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
