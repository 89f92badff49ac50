package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeo/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

type createGoalRequest struct {
	ProjectID        string `json:"projectId"`
	MinMinutesPerDay int    `json:"minMinutesPerDay"`
}

type updateGoalRequest struct {
	MinMinutesPerDay int `json:"minMinutesPerDay"`
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) List(c *gin.Context) {
	goals, apiErr := h.goalService.List(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func (h *GoalHandler) Create(c *gin.Context) {
	var req createGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	detail, apiErr := h.goalService.Create(c.Request.Context(), req.ProjectID, req.MinMinutesPerDay)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *GoalHandler) Update(c *gin.Context) {
	var req updateGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, apiErr := h.goalService.Update(c.Request.Context(), c.Param("id"), req.MinMinutesPerDay)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

func (h *GoalHandler) Delete(c *gin.Context) {
	if apiErr := h.goalService.Delete(c.Request.Context(), c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) Streaks(c *gin.Context) {
	days, ok := queryInt(c, "days")
	if !ok {
		return
	}

	history, apiErr := h.goalService.Streaks(c.Request.Context(), c.Param("id"), days)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *GoalHandler) Cleanup(c *gin.Context) {
	result, apiErr := h.goalService.Cleanup(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, result)
}
