package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/assist"
	"github.com/classreconnect/backend/core/conversation"
	"github.com/classreconnect/backend/core/quiz"
	"github.com/classreconnect/backend/core/resource"
	"github.com/classreconnect/backend/core/user"
)

type (
	ServerDeps struct {
		Logger          core.Logger
		UserSvc         user.Service
		ResourceSvc     resource.Service
		QuizSvc         quiz.Service
		ConversationSvc conversation.Service
		AssistSvc       assist.Service
		DisableReqLogs  bool
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORS())

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/api/health", health)

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAuthAPI(api, jwt, s.deps.UserSvc)
	registerResourceAPI(api, jwt, s.deps.ResourceSvc, s.deps.UserSvc)
	registerQuizAPI(api, jwt, s.deps.QuizSvc, s.deps.UserSvc)
	registerConversationAPI(api, jwt, s.deps.ConversationSvc, s.deps.UserSvc)
	registerAssistAPI(api, s.deps.AssistSvc)

	// uploaded documents and the SPA build
	if core.Conf.MediaRoot != "" {
		s.app.Static("/uploads", core.Conf.MediaRoot)
	}
	if core.Conf.FrontendDir != "" {
		s.app.Static("/", core.Conf.FrontendDir)
	}
}

func (s *server) Start() {
	if err := s.app.Start(core.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *server) Errors() <-chan error { return s.errs }

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

// signalShutdown initiates a graceful shutdown, e.g. on an unrecoverable error.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "OK", "message": core.Conf.AppName + " API is running"})
}
