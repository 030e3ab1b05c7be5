package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vpvn/bugreports/internal/modules/serializer"
	"github.com/vpvn/bugreports/internal/modules/service"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

// ListProjects godoc
//
//	@Summary	List projects
//	@Tags		buggyproject
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.Project}
//	@Router		/buggyproject/ [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

// CreateProject godoc
//
//	@Summary	Create project
//	@Tags		buggyproject
//	@Accept		json
//	@Produce	json
//	@Param		payload	body	service.CreateProjectInput	true	"Project"
//	@Security	BearerAuth
//	@Success	201	{object}	serializer.Response{data=model.Project}
//	@Failure	409	{object}	serializer.Response
//	@Router		/buggyproject/ [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := service.CreateProjectInput{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	p, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Code: http.StatusCreated, Data: p})
}

// GetProject godoc
//
//	@Summary	Get project
//	@Tags		buggyproject
//	@Produce	json
//	@Param		id	path	string	true	"Project id"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.Project}
//	@Failure	404	{object}	serializer.Response
//	@Router		/buggyproject/{id}/ [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

type UpdateProjectReq struct {
	Name string `json:"name" example:"Test buggy project"`
}

// UpdateProject godoc
//
//	@Summary		Rename project
//	@Description	PUT and PATCH both replace the name; the id is immutable.
//	@Tags			buggyproject
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"Project id"
//	@Param			payload	body	handler.UpdateProjectReq	true	"New name"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Router			/buggyproject/{id}/ [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	p, err := h.svc.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Deletes the project with all of its bugs and occasions.
//	@Tags			buggyproject
//	@Param			id	path	string	true	"Project id"
//	@Security		BearerAuth
//	@Success		204
//	@Router			/buggyproject/{id}/ [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
