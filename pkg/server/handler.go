package server

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikeboe/verifact/pkg/history"
	"github.com/mikeboe/verifact/pkg/session"
)

type Handler struct {
	Service *Service
	MCP     http.Handler
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s, MCP: NewMCPHandler(NewMCPServer(s))}
}

// NewRouter builds the gin engine with CORS, request IDs and all routes.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestIDMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader, "Mcp-Session-Id"},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader, "Mcp-Session-Id"},
	}))

	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Any("/mcp", gin.WrapH(h.MCP))

	api := r.Group("/api")
	{
		api.POST("/analyze", h.analyze)
		api.GET("/session", h.getSession)
		api.GET("/credibility", h.getCredibility)
		api.GET("/history", h.listHistory)
		api.POST("/history/:id/load", h.loadHistory)
	}
}

// statusFor maps rejections to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrBlankQuery):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, session.ErrHistoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type AnalyzeRequest struct {
	Query string `json:"query"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := h.Service.Analyze(c.Request.Context(), req.Query)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "state": st})
		return
	}

	// Analysis failures are a session state, not a transport error.
	c.JSON(http.StatusOK, st)
}

func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.State())
}

func (h *Handler) getCredibility(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Credibility())
}

func (h *Handler) listHistory(c *gin.Context) {
	items := h.Service.History()
	// Return empty list instead of null
	if items == nil {
		items = []history.Item{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) loadHistory(c *gin.Context) {
	st, err := h.Service.LoadHistory(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}
