package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/core/course"
	"github.com/trezcool/studentlogs/core/studentlog"
	appfs "github.com/trezcool/studentlogs/fs"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		CourseSvc  course.Service
		LogSvc     studentlog.Service
		Translator ut.Translator
	}

	Server struct {
		ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ http.Handler = (*Server)(nil)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		ServerDeps: deps,
		app:        echo.New(),
		errors:     make(chan error, 1),
		shutdown:   make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Debug = s.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.Conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.Conf.Debug || s.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.Logger, s.Translator, s.SignalShutdown)
	s.app.Renderer = newTemplateRenderer()

	s.app.GET(errorPagePath, errorPage)

	v1 := s.app.Group("/api/v1")
	registerCourseAPI(v1, s.CourseSvc)
	registerLogAPI(v1, s.LogSvc)

	// browser client; anything not found here ends up on the error page
	s.app.StaticFS("/", appfs.Public)
}

// Start blocks until the server stops. Startup failures are sent to Errors().
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	printStartupInfo(os.Stdout, s.Conf)

	if err := s.app.Start(s.Conf.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

// SignalShutdown asks the app to stop gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // shutdown already requested
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
