package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skinsage/backend/internal/domain"
)

// Recommender is the usecase surface the HTTP layer depends on
type Recommender interface {
	Recommend(ctx context.Context, request *domain.RecommendRequest) (*domain.Recommendation, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommender Recommender
}

// NewHandler creates a new HTTP handler
func NewHandler(recommender Recommender) *Handler {
	return &Handler{recommender: recommender}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "skinsage-backend",
		"version": "1.0.0",
	})
}

// Recommend handles product recommendation requests. An empty results
// list is a valid 200 response; provider failures never surface here
// because the cascade degrades them to zero candidates.
func (h *Handler) Recommend(c *gin.Context) {
	var request domain.RecommendRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	recommendation, err := h.recommender.Recommend(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendation failed"})
		return
	}

	c.JSON(http.StatusOK, recommendation)
}
