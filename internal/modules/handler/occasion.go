package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vpvn/bugreports/internal/modules/serializer"
	"github.com/vpvn/bugreports/internal/modules/service"
)

type OccasionHandler struct {
	svc service.OccasionService
}

func NewOccasionHandler(s service.OccasionService) *OccasionHandler {
	return &OccasionHandler{svc: s}
}

type ListOccasionsReq struct {
	Bug        int64  `form:"bug" json:"bug" binding:"omitempty,min=1"`
	BugProject string `form:"bug__project" json:"bug__project" example:"test"`
	OS         string `form:"os" json:"os" example:"linux"`
	Limit      int    `form:"limit" json:"limit" binding:"omitempty,min=0,max=200" example:"20"`
	Cursor     string `form:"cursor" json:"cursor"`
}

// ListOccasions godoc
//
//	@Summary		List occasions
//	@Description	Occasions newest first, filterable by bug, the bug's project and os.
//	@Tags			occusian
//	@Produce		json
//	@Param			bug				query	integer	false	"Bug id"
//	@Param			bug__project	query	string	false	"Project id of the bug"
//	@Param			os				query	string	false	"android, win or linux"
//	@Param			limit			query	integer	false	"Page size, max 200"
//	@Param			cursor			query	string	false	"next_cursor of the previous page"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListOccasionsOutput}
//	@Router			/occusian/ [get]
func (h *OccasionHandler) ListOccasions(c *gin.Context) {
	req := ListOccasionsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	out, err := h.svc.List(c.Request.Context(), service.ListOccasionsInput{
		BugID:     req.Bug,
		ProjectID: req.BugProject,
		OS:        req.OS,
		Limit:     req.Limit,
		Cursor:    req.Cursor,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type CreateOccasionReq struct {
	Bug     int64   `json:"bug" example:"1"`
	Email   *string `json:"email" example:"user@example.com"`
	OS      *string `json:"os" enums:"android,win,linux"`
	Details *string `json:"details"`
}

// CreateOccasion godoc
//
//	@Summary		Create occasion
//	@Description	The ip of the new occasion is the caller's address.
//	@Tags			occusian
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateOccasionReq	true	"Occasion"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Occasion}
//	@Router			/occusian/ [post]
func (h *OccasionHandler) CreateOccasion(c *gin.Context) {
	req := CreateOccasionReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ip := c.RemoteIP()
	o, err := h.svc.RecordOccasion(c.Request.Context(), service.RecordOccasionInput{
		BugID:   req.Bug,
		Email:   req.Email,
		IP:      &ip,
		OS:      req.OS,
		Details: req.Details,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Code: http.StatusCreated, Data: o})
}

// GetOccasion godoc
//
//	@Summary	Get occasion
//	@Tags		occusian
//	@Produce	json
//	@Param		id	path	integer	true	"Occasion id"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.Occasion}
//	@Failure	404	{object}	serializer.Response
//	@Router		/occusian/{id}/ [get]
func (h *OccasionHandler) GetOccasion(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: o})
}

type UpdateOccasionReq struct {
	Email   *string `json:"email"`
	OS      *string `json:"os" enums:"android,win,linux"`
	Details *string `json:"details"`
}

// UpdateOccasion godoc
//
//	@Summary		Update occasion
//	@Description	Edits email, os and details. The bug, ip and timestamp of an occasion never change. PUT clears omitted fields, PATCH keeps them.
//	@Tags			occusian
//	@Accept			json
//	@Produce		json
//	@Param			id		path	integer						true	"Occasion id"
//	@Param			payload	body	handler.UpdateOccasionReq	true	"Fields"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Occasion}
//	@Router			/occusian/{id}/ [put]
func (h *OccasionHandler) UpdateOccasion(c *gin.Context) {
	h.update(c, false)
}

// PatchOccasion godoc
//
//	@Summary	Update occasion fields
//	@Tags		occusian
//	@Accept		json
//	@Produce	json
//	@Param		id		path	integer						true	"Occasion id"
//	@Param		payload	body	handler.UpdateOccasionReq	true	"Fields"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.Occasion}
//	@Router		/occusian/{id}/ [patch]
func (h *OccasionHandler) PatchOccasion(c *gin.Context) {
	h.update(c, true)
}

func (h *OccasionHandler) update(c *gin.Context, partial bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	req := UpdateOccasionReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if !partial {
		empty := ""
		for _, f := range []**string{&req.Email, &req.OS, &req.Details} {
			if *f == nil {
				*f = &empty
			}
		}
	}
	o, err := h.svc.Update(c.Request.Context(), service.UpdateOccasionInput{
		ID:      id,
		Email:   req.Email,
		OS:      req.OS,
		Details: req.Details,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: o})
}

// DeleteOccasion godoc
//
//	@Summary	Delete occasion
//	@Tags		occusian
//	@Param		id	path	integer	true	"Occasion id"
//	@Security	BearerAuth
//	@Success	204
//	@Router		/occusian/{id}/ [delete]
func (h *OccasionHandler) DeleteOccasion(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
