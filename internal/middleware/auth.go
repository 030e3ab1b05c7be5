package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vpvn/bugreports/internal/modules/model"
	"github.com/vpvn/bugreports/internal/modules/serializer"
	"github.com/vpvn/bugreports/internal/modules/service"
	"github.com/vpvn/bugreports/internal/pkg/utils/tokens"
)

const operatorKey = "operator"

// Authenticator is the part of service.OperatorService the middleware needs.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*model.Operator, error)
}

// Authenticate resolves an optional "Authorization: Bearer" operator token.
// Requests without a valid token continue anonymously; Access decides
// whether that is enough.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := tokens.FromAuthorization(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		ctx, authSpan := otel.Tracer("middleware").Start(c.Request.Context(), "operator_auth",
			trace.WithAttributes(attribute.String("middleware", "operator_auth")))

		op, err := auth.Authenticate(ctx, raw)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				authSpan.SetAttributes(attribute.Bool("authenticated", false))
				authSpan.End()
				c.Next()
				return
			}
			authSpan.RecordError(err)
			authSpan.End()
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}

		if rootSpan := trace.SpanFromContext(c.Request.Context()); rootSpan.SpanContext().IsValid() {
			rootSpan.SetAttributes(attribute.String("operator", op.Name))
		}
		authSpan.SetAttributes(
			attribute.String("operator", op.Name),
			attribute.Bool("authenticated", true),
		)
		authSpan.End()

		c.Set(operatorKey, op)
		c.Next()
	}
}

// CurrentOperator returns the operator Authenticate attached to c.
func CurrentOperator(c *gin.Context) (*model.Operator, bool) {
	v, ok := c.Get(operatorKey)
	if !ok {
		return nil, false
	}
	op, ok := v.(*model.Operator)
	return op, ok && op != nil
}
