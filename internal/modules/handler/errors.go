package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/vpvn/bugreports/internal/modules/serializer"
	"github.com/vpvn/bugreports/internal/modules/service"
)

// writeErr maps service errors onto status codes. Unknown errors are 500s
// and carry the trace id so they can be found in the logs.
func writeErr(c *gin.Context, err error) {
	var ve *service.ValidationError
	var nf *service.NotFoundError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(ve.Error(), nil))
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(nf.Msg, nil))
	case errors.Is(err, service.ErrBugNotFound),
		errors.Is(err, service.ErrOccasionNotFound),
		errors.Is(err, service.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(err.Error(), nil))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, serializer.ConflictErr(err.Error(), nil))
	default:
		_ = c.Error(err)
		res := serializer.TrackedErrorResponse{Response: serializer.DBErr("", err)}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			res.TraceID = sc.TraceID().String()
		}
		c.JSON(http.StatusInternalServerError, res)
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid "+name, err))
		return 0, false
	}
	return id, true
}
