package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "timeo/internal/errors"
	"timeo/internal/service"
)

type TimerHandler struct {
	timerService *service.TimerService
}

type startTimerRequest struct {
	ProjectID string `json:"projectId"`
	Note      string `json:"note"`
}

type stopTimerRequest struct {
	EntryID string `json:"entryId"`
}

type updateEntryRequest struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
	Note  *string    `json:"note"`
}

func NewTimerHandler(timerService *service.TimerService) *TimerHandler {
	return &TimerHandler{timerService: timerService}
}

func (h *TimerHandler) Start(c *gin.Context) {
	var req startTimerRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, apiErr := h.timerService.Start(c.Request.Context(), req.ProjectID, req.Note)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// Stop accepts an empty body, which stops the latest running entry.
func (h *TimerHandler) Stop(c *gin.Context) {
	var req stopTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return
	}

	entry, apiErr := h.timerService.Stop(c.Request.Context(), req.EntryID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (h *TimerHandler) Running(c *gin.Context) {
	entry, apiErr := h.timerService.Running(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (h *TimerHandler) ListEntries(c *gin.Context) {
	entries, apiErr := h.timerService.ListEntries(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *TimerHandler) RecentEntries(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	entries, apiErr := h.timerService.Recent(c.Request.Context(), limit)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *TimerHandler) RestartEntry(c *gin.Context) {
	entry, apiErr := h.timerService.Restart(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *TimerHandler) UpdateEntry(c *gin.Context) {
	var req updateEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, apiErr := h.timerService.UpdateEntry(c.Request.Context(), c.Param("id"), service.UpdateEntryInput{
		Start: req.Start,
		End:   req.End,
		Note:  req.Note,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (h *TimerHandler) DeleteEntry(c *gin.Context) {
	if apiErr := h.timerService.DeleteEntry(c.Request.Context(), c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
