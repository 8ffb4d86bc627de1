package echoapi

import (
	"context"
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/course"
	"github.com/trezcool/masomo-admin/core/permission"
	"github.com/trezcool/masomo-admin/core/student"
	"github.com/trezcool/masomo-admin/core/user"
)

type (
	Options struct {
		Address        string
		Debug          bool
		DisableReqLogs bool
		AppName        string
		SecretKey      []byte
		TokenTTL       time.Duration

		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		Users       user.Repository
		Students    student.Repository
		Courses     course.Repository
		Permissions permission.Repository
	}

	// Server is a sandbox implementation of the back-office REST API.
	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api")
	registerAuthAPI(api, s.opts)

	authed := api.Group("", jwtMiddleware(s.opts.SecretKey), adminMiddleware())
	registerUserAPI(authed, s.opts)
	registerCrudAPI(authed, "/alunos", newStudentAPI(s.opts))
	registerCrudAPI(authed, "/cursos", newCourseAPI(s.opts))
	registerCrudAPI(authed, "/permissoes", newPermissionAPI(s.opts))
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Masomo API!")
}
