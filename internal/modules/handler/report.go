package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vpvn/bugreports/internal/modules/serializer"
	"github.com/vpvn/bugreports/internal/modules/service"
)

type ReportHandler struct {
	svc service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{svc: s}
}

// SubmitReportReq is the body of a crash report. Any ip in the body is
// ignored.
type SubmitReportReq struct {
	ProjectID     string  `json:"project_id" example:"test"`
	ExceptionText string  `json:"exception_text" example:"Traceback (most recent call last): ..."`
	Email         *string `json:"email" example:"user@example.com"`
	OS            *string `json:"os" enums:"android,win,linux" example:"linux"`
	Details       *string `json:"details" example:"crashed while saving"`
}

// SubmitReport godoc
//
//	@Summary		Submit a crash report
//	@Description	Record a crash report. Reports with the same project and exception text are grouped into one bug; every report adds an occasion. The client IP is taken from the connection.
//	@Tags			reports
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.SubmitReportReq	true	"Crash report"
//	@Success		200		{object}	serializer.Response{data=service.ReportOutput}
//	@Failure		400		{object}	serializer.Response
//	@Router			/reports/ [post]
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	req := SubmitReportReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ip := c.RemoteIP()
	out, err := h.svc.Submit(c.Request.Context(), service.SubmitReportInput{
		ProjectID:     req.ProjectID,
		ExceptionText: req.ExceptionText,
		Email:         req.Email,
		IP:            &ip,
		OS:            req.OS,
		Details:       req.Details,
	})
	if err != nil {
		// an unknown project is a bad report, not a missing resource
		var nf *service.NotFoundError
		if errors.As(err, &nf) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr(nf.Msg, nil))
			return
		}
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type ListReportsReq struct {
	Limit  int `form:"limit" json:"limit" binding:"omitempty,min=0,max=1000" example:"1000"`
	Offset int `form:"offset" json:"offset" binding:"omitempty,min=0" example:"0"`
}

// ListReports godoc
//
//	@Summary		List reports
//	@Description	One row per project, bug and occasion, with missing sides null.
//	@Tags			reports
//	@Produce		json
//	@Param			limit	query	integer	false	"Rows to return, max 1000; all rows when omitted"
//	@Param			offset	query	integer	false	"Rows to skip"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]repo.ReportRow}
//	@Failure		401	{object}	serializer.Response
//	@Router			/reports/ [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	req := ListReportsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	rows, err := h.svc.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: rows})
}
