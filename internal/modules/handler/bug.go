package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vpvn/bugreports/internal/modules/serializer"
	"github.com/vpvn/bugreports/internal/modules/service"
)

type BugHandler struct {
	svc       service.BugService
	occasions service.OccasionService
}

func NewBugHandler(s service.BugService, occasions service.OccasionService) *BugHandler {
	return &BugHandler{svc: s, occasions: occasions}
}

type ListBugsReq struct {
	Project string `form:"project" json:"project" example:"test"`
	Limit   int    `form:"limit" json:"limit" binding:"omitempty,min=0,max=200" example:"20"`
	Cursor  string `form:"cursor" json:"cursor"`
}

// ListBugs godoc
//
//	@Summary		List bugs
//	@Description	Bugs oldest first. Without limit every matching bug is returned.
//	@Tags			bug
//	@Produce		json
//	@Param			project	query	string	false	"Only bugs of this project"
//	@Param			limit	query	integer	false	"Page size, max 200"
//	@Param			cursor	query	string	false	"next_cursor of the previous page"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListBugsOutput}
//	@Router			/bug/ [get]
func (h *BugHandler) ListBugs(c *gin.Context) {
	req := ListBugsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	out, err := h.svc.List(c.Request.Context(), service.ListBugsInput{
		ProjectID: req.Project,
		Limit:     req.Limit,
		Cursor:    req.Cursor,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// CreateBug godoc
//
//	@Summary		Create bug
//	@Description	Registers a bug by hand. The dedup identifier is derived from project and exception_text.
//	@Tags			bug
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	service.CreateBugInput	true	"Bug"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Bug}
//	@Failure		409	{object}	serializer.Response
//	@Router			/bug/ [post]
func (h *BugHandler) CreateBug(c *gin.Context) {
	req := service.CreateBugInput{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	b, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Code: http.StatusCreated, Data: b})
}

// GetBug godoc
//
//	@Summary	Get bug
//	@Tags		bug
//	@Produce	json
//	@Param		id	path	integer	true	"Bug id"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=service.BugDetail}
//	@Failure	404	{object}	serializer.Response
//	@Router		/bug/{id}/ [get]
func (h *BugHandler) GetBug(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: d})
}

type UpdateBugReq struct {
	Project       *string `json:"project" example:"test"`
	ExceptionText *string `json:"exception_text"`
	Description   *string `json:"description"`
	DiscussionURL *string `json:"discussian_url" example:"https://tracker.example.com/issues/1"`
}

// UpdateBug godoc
//
//	@Summary		Replace bug
//	@Description	PUT needs project and exception_text; omitted description and discussian_url are cleared. The dedup identifier follows project and exception_text.
//	@Tags			bug
//	@Accept			json
//	@Produce		json
//	@Param			id		path	integer				true	"Bug id"
//	@Param			payload	body	handler.UpdateBugReq	true	"Bug"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Bug}
//	@Router			/bug/{id}/ [put]
func (h *BugHandler) UpdateBug(c *gin.Context) {
	h.update(c, false)
}

// PatchBug godoc
//
//	@Summary	Update bug fields
//	@Tags		bug
//	@Accept		json
//	@Produce	json
//	@Param		id		path	integer				true	"Bug id"
//	@Param		payload	body	handler.UpdateBugReq	true	"Fields to change"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.Bug}
//	@Router		/bug/{id}/ [patch]
func (h *BugHandler) PatchBug(c *gin.Context) {
	h.update(c, true)
}

func (h *BugHandler) update(c *gin.Context, partial bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	req := UpdateBugReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if !partial {
		switch {
		case req.Project == nil:
			c.JSON(http.StatusBadRequest, serializer.ParamErr("project: this field is required", nil))
			return
		case req.ExceptionText == nil:
			c.JSON(http.StatusBadRequest, serializer.ParamErr("exception_text: this field is required", nil))
			return
		}
		empty := ""
		if req.Description == nil {
			req.Description = &empty
		}
		if req.DiscussionURL == nil {
			req.DiscussionURL = &empty
		}
	}

	b, err := h.svc.Update(c.Request.Context(), service.UpdateBugInput{
		ID:            id,
		ProjectID:     req.Project,
		ExceptionText: req.ExceptionText,
		Description:   req.Description,
		DiscussionURL: req.DiscussionURL,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: b})
}

// DeleteBug godoc
//
//	@Summary		Delete bug
//	@Description	Deletes the bug and its occasions.
//	@Tags			bug
//	@Param			id	path	integer	true	"Bug id"
//	@Security		BearerAuth
//	@Success		204
//	@Router			/bug/{id}/ [delete]
func (h *BugHandler) DeleteBug(c *gin.Context) {
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

// ListBugOccasions godoc
//
//	@Summary	List occasions of a bug
//	@Tags		bug
//	@Produce	json
//	@Param		id		path	integer	true	"Bug id"
//	@Param		limit	query	integer	false	"Page size, max 200"
//	@Param		cursor	query	string	false	"next_cursor of the previous page"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=service.ListOccasionsOutput}
//	@Router		/bug/{id}/occasions/ [get]
func (h *BugHandler) ListBugOccasions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	req := ListBugsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if _, err := h.svc.Get(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	out, err := h.occasions.List(c.Request.Context(), service.ListOccasionsInput{
		BugID:  id,
		Limit:  req.Limit,
		Cursor: req.Cursor,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
