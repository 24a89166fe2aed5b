// Package server exposes the generation and simulation pipelines over HTTP.
// It is a thin command boundary: handlers decode the request shapes, call
// the engine, and return its result objects verbatim.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HexSleeves/dungeon-forge/internal/engine"
	"github.com/HexSleeves/dungeon-forge/internal/graph"
	"github.com/HexSleeves/dungeon-forge/internal/sim"
)

// Config holds server settings.
type Config struct {
	Port int
}

// Server wires the HTTP router to the generation pipelines.
type Server struct {
	cfg    Config
	router *gin.Engine
	logger *slog.Logger
}

// New creates a server with its routes registered.
func New(cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{cfg: cfg, router: router, logger: logger}
	s.registerRoutes()
	return s
}

// Router returns the underlying gin engine, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("starting server", "addr", addr)
	return s.router.Run(addr)
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/v1")
	{
		v1.POST("/generate", s.handleGenerate)
		v1.POST("/simulate", s.handleSimulate)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req engine.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result := engine.Generate(c.Request.Context(), req)
	s.logger.Info("generation complete",
		"generator_id", req.GeneratorID,
		"seed", req.Seed,
		"success", result.Success,
		"rooms", len(result.Data.Rooms))

	c.JSON(http.StatusOK, result)
}

// simulateRequest is the simulation config plus the generator document to
// run it against. Without a generator the fallback pipeline is simulated.
type simulateRequest struct {
	sim.Config
	Generator *graph.Generator `json:"generator,omitempty"`
}

func (s *Server) handleSimulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if req.RunCount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "runCount must be positive"})
		return
	}

	results := sim.Run(c.Request.Context(), req.Generator, req.Config)
	s.logger.Info("simulation complete",
		"generator_id", req.GeneratorID,
		"runs", results.Runs,
		"duration_ms", results.DurationMS)

	c.JSON(http.StatusOK, results)
}
