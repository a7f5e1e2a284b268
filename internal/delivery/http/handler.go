package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/truthlens/backend/internal/domain"
	"github.com/truthlens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analysis *usecase.AnalysisService
}

// NewHandler creates a new HTTP handler
func NewHandler(analysis *usecase.AnalysisService) *Handler {
	return &Handler{analysis: analysis}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "truthlens-backend",
		"version": "1.0.0",
	})
}

// AnalyzeProduct runs the full analysis pipeline for a URL or pasted text
func (h *Handler) AnalyzeProduct(c *gin.Context) {
	if h.analysis == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Analysis service not configured",
		})
		return
	}

	var request domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	analysis, err := h.analysis.Analyze(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// ExtractClaims resolves the product and returns only extracted claims
func (h *Handler) ExtractClaims(c *gin.Context) {
	if h.analysis == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Analysis service not configured",
		})
		return
	}

	var request domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	product, claims, err := h.analysis.ExtractClaims(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_title": product.Title,
		"claims":        claims,
		"count":         len(claims),
	})
}

// VerifyClaim verifies a single caller-supplied claim
func (h *Handler) VerifyClaim(c *gin.Context) {
	if h.analysis == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Analysis service not configured",
		})
		return
	}

	var claim domain.Claim
	if err := c.ShouldBindJSON(&claim); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	if claim.Text == "" || claim.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Claim text and category are required",
		})
		return
	}

	c.JSON(http.StatusOK, h.analysis.VerifyClaim(claim))
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrTextTooShort),
		errors.Is(err, domain.ErrTextTooLong):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, domain.ErrPageBlocked),
		errors.Is(err, domain.ErrPageUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"hint":  "Try pasting the product description as text instead",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
