package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeo/internal/service"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

type createProjectRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type updateProjectRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, apiErr := h.projectService.List(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, apiErr := h.projectService.Create(c.Request.Context(), req.Name, req.Color)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": project})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project, apiErr := h.projectService.Get(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req updateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, apiErr := h.projectService.Update(c.Request.Context(), c.Param("id"), service.UpdateProjectInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	if apiErr := h.projectService.Delete(c.Request.Context(), c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
