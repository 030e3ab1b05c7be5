package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vpvn/bugreports/internal/modules/serializer"
)

// Level is the minimum caller standing an operation needs.
type Level int

const (
	// LevelAdmin is the zero value so an operation missing from a Policy is
	// admin-only.
	LevelAdmin Level = iota
	LevelAuthenticated
	LevelPublic
)

func (l Level) String() string {
	switch l {
	case LevelPublic:
		return "public"
	case LevelAuthenticated:
		return "authenticated"
	default:
		return "admin"
	}
}

// Policy maps operation names to the level required to call them.
type Policy map[string]Level

// Require returns the level for op; unknown operations need an admin.
func (p Policy) Require(op string) Level {
	if l, ok := p[op]; ok {
		return l
	}
	return LevelAdmin
}

// Access enforces policy for op. Anonymous callers of a guarded operation get
// 401, authenticated non-admins of an admin operation get 403.
func Access(policy Policy, op string) gin.HandlerFunc {
	need := policy.Require(op)
	return func(c *gin.Context) {
		if need == LevelPublic {
			c.Next()
			return
		}
		caller, ok := CurrentOperator(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("authentication credentials were not provided"))
			return
		}
		if need == LevelAdmin && !caller.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, serializer.ForbiddenErr("you do not have permission to perform this action"))
			return
		}
		c.Next()
	}
}
