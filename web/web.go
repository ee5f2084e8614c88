// Package web provides the EcoCart web server: HTTP/HTTPS serving, routing,
// session handling and scheduled maintenance jobs.
package web

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ecocart/ecocart/config"
	"github.com/ecocart/ecocart/logger"
	"github.com/ecocart/ecocart/util/common"
	redisutil "github.com/ecocart/ecocart/util/redis"
	"github.com/ecocart/ecocart/web/controller"
	"github.com/ecocart/ecocart/web/job"
	"github.com/ecocart/ecocart/web/middleware"
	"github.com/ecocart/ecocart/web/service"
	"github.com/ecocart/ecocart/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server is the storefront web server with its controllers, session
// manager and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	auth    *controller.AuthController
	catalog *controller.CatalogController
	cart    *controller.CartController
	voice   *controller.VoiceController
	status  *controller.StatusController

	settingService service.SettingService
	sessionManager *session.Manager

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initSessionManager builds the session manager from stored settings,
// choosing the Redis store when Redis is configured and the database store
// otherwise.
func (s *Server) initSessionManager(secure bool) (*session.Manager, error) {
	secret, err := s.settingService.GetSecret()
	if err != nil {
		return nil, err
	}
	maxAgeMinutes, err := s.settingService.GetSessionMaxAge()
	if err != nil {
		return nil, err
	}

	var store session.Store
	if redisutil.IsEnabled() {
		store = session.NewRedisStore(redisutil.Client())
	} else {
		store = session.NewDBStore()
	}

	maxAge := time.Duration(maxAgeMinutes) * time.Minute
	return session.NewManager(store, []byte(secret), maxAge, secure), nil
}

// initRouter initializes Gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter(secure bool) (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	webDomain, err := s.settingService.GetWebDomain()
	if err != nil {
		return nil, err
	}
	if webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	sessionManager, err := s.initSessionManager(secure)
	if err != nil {
		return nil, err
	}
	s.sessionManager = sessionManager
	engine.Use(sessionManager.Middleware())

	api := engine.Group("/api")
	{
		s.auth = controller.NewAuthController(api, sessionManager,
			middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig()))

		s.catalog = controller.NewCatalogController(api)
		s.cart = controller.NewCartController(api)
		s.voice = controller.NewVoiceController(api)
		s.status = controller.NewStatusController(api)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background maintenance jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewClearSessionsJob())
	s.cron.AddJob("@hourly", job.NewCheckpointDBJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc))
	s.cron.Start()

	certFile, err := s.settingService.GetCertFile()
	if err != nil {
		return err
	}
	keyFile, err := s.settingService.GetKeyFile()
	if err != nil {
		return err
	}
	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	secure := certFile != "" && keyFile != ""

	engine, err := s.initRouter(secure)
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	if secure {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
			listener = tls.NewListener(listener, cfg)
			logger.Info("Web server running HTTPS on", listener.Addr())
		} else {
			logger.Error("Error loading certificates:", err)
			logger.Info("Web server running HTTP on", listener.Addr())
		}
	} else {
		logger.Info("Web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}
