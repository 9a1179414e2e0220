// Package httpapi exposes the comment service over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"CommentsAnalyzer/internal/domain"
	"CommentsAnalyzer/internal/logging"
	"CommentsAnalyzer/internal/usecase"
)

// CommentService is the use-case surface the handlers need.
type CommentService interface {
	Submit(ctx context.Context, req usecase.SubmitRequest) (domain.NewsRecord, error)
	Get(ctx context.Context, id string) (domain.NewsRecord, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (domain.StatsReport, error)
}

// Handler binds HTTP routes to a CommentService.
type Handler struct {
	service CommentService
	logger  *slog.Logger
}

// NewHandler wires the service; a nil logger discards output.
func NewHandler(service CommentService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{service: service, logger: logger.With("component", "httpapi")}
}

// NewRouter constructs a gin engine with middleware and registered routes.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())

	if len(allowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = allowedOrigins
		corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
		r.Use(cors.New(corsCfg))
	}

	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes attaches every endpoint to r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/health", h.Health)

	comments := r.Group("/comments")
	{
		comments.POST("", h.Submit)
		comments.GET("/id/:id", h.Get)
		comments.DELETE("/id/:id", h.Delete)
		comments.GET("/stats/:id", h.Stats)
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Submit handles POST /comments.
func (h *Handler) Submit(c *gin.Context) {
	var req usecase.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	record, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Get handles GET /comments/id/:id.
func (h *Handler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete handles DELETE /comments/id/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats handles GET /comments/stats/:id.
func (h *Handler) Stats(c *gin.Context) {
	report, err := h.service.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "status", status, "error", err)
	}
	c.JSON(status, gin.H{"error": message})
}

// statusFor maps core error kinds onto HTTP statuses.
func statusFor(err error) (int, string) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		empty      *domain.EmptyCommentsError
		fetch      *domain.FetchError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error()
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case errors.As(err, &empty):
		return http.StatusNotFound, "no comments for this article"
	case errors.As(err, &fetch):
		return http.StatusBadGateway, fetch.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
