package kioskserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/ramen-kiosk/internal/platform/auth"
	apierrors "github.com/Apurer/ramen-kiosk/internal/shared/errors"
)

// OperatorSubjectKey holds the authenticated operator in the gin context.
const OperatorSubjectKey = "kiosk.operator"

// OperatorAuth requires a bearer token carrying the operator role.
func OperatorAuth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("bearer token required"))
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
			return
		}
		if !claims.HasRole(auth.RoleOperator) {
			apierrors.Respond(c, apierrors.ErrForbidden.WithDetail("operator role required"))
			return
		}
		c.Set(OperatorSubjectKey, claims.Subject)
		c.Next()
	}
}
