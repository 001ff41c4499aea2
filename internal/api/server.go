// Package api exposes the scenario generator and analyzer over HTTP.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/ccsgo/internal/calculation"
	"github.com/rgehrsitz/ccsgo/internal/config"
	"github.com/rgehrsitz/ccsgo/internal/scenario"
	"github.com/rgehrsitz/ccsgo/pkg/metrics"
)

// Config wires the server's collaborators. Generator is required; the rest have defaults.
type Config struct {
	Generator      *scenario.Generator
	Parser         *config.InputParser
	Recorder       *metrics.Recorder
	Logger         calculation.Logger
	AllowedOrigins []string
	Version        string
}

// Server holds the handlers' shared state
type Server struct {
	generator *scenario.Generator
	parser    *config.InputParser
	recorder  *metrics.Recorder
	logger    calculation.Logger
	origins   []string
	version   string
	started   time.Time
}

// NewServer builds a server. A nil generator uses the default rate schedule.
func NewServer(cfg Config) *Server {
	gen := cfg.Generator
	if gen == nil {
		gen = scenario.NewGenerator(nil)
	}
	parser := cfg.Parser
	if parser == nil {
		parser = config.NewInputParserWithSchedule(gen.Engine().Schedule)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Server{
		generator: gen,
		parser:    parser,
		recorder:  cfg.Recorder,
		logger:    logger,
		origins:   cfg.AllowedOrigins,
		version:   cfg.Version,
		started:   time.Now(),
	}
}

// Router returns the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger(), s.corsMiddleware())

	router.GET("/health", s.health)
	if s.recorder != nil {
		router.GET("/metrics", gin.WrapH(s.recorder.Handler()))
	}

	s.RegisterRoutes(router.Group(""))
	return router
}

// RegisterRoutes mounts the scenario API under /api
func (s *Server) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	{
		api.GET("/rates", s.rates)
		api.GET("/metrics", s.listMetrics)
	}

	scenarios := api.Group("/scenarios")
	{
		scenarios.POST("/exhaustive", s.generate(scenario.ModeExhaustive))
		scenarios.POST("/common", s.generate(scenario.ModeCommon))
		scenarios.POST("/custom", s.custom)
		scenarios.POST("/filter", s.filter)
		scenarios.POST("/sort", s.sort)
		scenarios.POST("/best", s.best)
	}
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}

	allowAll := len(s.origins) == 0
	for _, origin := range s.origins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.origins
	}
	return cors.New(corsConfig)
}

// requestLogger logs each request and feeds the HTTP metrics
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		if s.recorder != nil {
			s.recorder.RecordHTTPRequest(path, c.Request.Method, statusLabel(status), elapsed)
		}
		s.logger.Infof("%s %s %d %s", c.Request.Method, path, status, elapsed)
	}
}
