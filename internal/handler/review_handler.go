package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeo/internal/service"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Today(c *gin.Context) {
	review, apiErr := h.reviewService.Today(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Daily(c *gin.Context) {
	days, ok := queryInt(c, "days")
	if !ok {
		return
	}

	reports, apiErr := h.reviewService.Daily(c.Request.Context(), days)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": reports})
}

// Report serves ?type=overview|daily|weekly|monthly&limit=N&project=name.
func (h *ReviewHandler) Report(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	report, apiErr := h.reviewService.Report(c.Request.Context(), service.ReportQuery{
		Type:    c.Query("type"),
		Limit:   limit,
		Project: c.Query("project"),
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReviewHandler) Range(c *gin.Context) {
	dataRange, apiErr := h.reviewService.Range(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, dataRange)
}
