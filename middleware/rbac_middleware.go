package middleware

import (
	"github.com/gofiber/fiber/v2"
	"hire-backend/lib/rbac"
	apimodels "hire-backend/models/api"
)

// RbacMiddleware applies the coarse route rules. Routes without a rule are public.
func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		handler, found := rbac.Instance.GetRuleFunc(ctx.Method(), ctx.Path())
		if !found {
			return ctx.Next()
		}
		userID := GetUserID(ctx)
		if userID == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("authentication required"))
		}
		userRole := GetUserRole(ctx)
		if !userRole.IsKnown() || !handler(userID, userRole, ctx.Path()) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("RBAC_FORBIDDEN"))
		}
		return ctx.Next()
	}
}
