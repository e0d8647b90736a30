package httpserver

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/weather-api-wrapper/internal/core/ports"
	customMiddleware "github.com/avatarctic/weather-api-wrapper/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	// StaticDir is served at / when it exists.
	StaticDir string
	Version   string
}

type ServerDeps struct {
	WeatherService     ports.WeatherService
	RateLimiterService ports.RateLimiterService
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	weatherSvc     ports.WeatherService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
	startedAt      time.Time
}

// structValidator adapts go-playground/validator to echo.Validator.
type structValidator struct {
	v *validator.Validate
}

func (sv *structValidator) Validate(i interface{}) error {
	return sv.v.Struct(i)
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &structValidator{v: validator.New()}

	if serverConfig.Version == "" {
		serverConfig.Version = "1.0.0"
	}

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		weatherSvc:     deps.WeatherService,
		healthCheckers: deps.HealthCheckers,
		startedAt:      time.Now(),
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.RateLimiterService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}
	e.HTTPErrorHandler = server.handleError

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
