package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hire-backend/controllers"
	"hire-backend/lib/rbac"
	apimodels "hire-backend/models/api"
)

type meApiController struct {
	controllers.BaseAPIController
}

func InitMeApiRouters(app fiber.Router) {
	controller := meApiController{}
	app.Get("me/permissions", controller.permissions)
}

type permissionsView struct {
	UserID      string              `json:"user_id"`
	Role        string              `json:"role"`
	Permissions map[string][]string `json:"permissions"`
}

// @Summary Permissions of the caller
// @Tags Me
// @Description Module permissions granted to the caller role, used by the frontend to build menus
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=permissionsView}
// @Failure 401 {object} apimodels.Response
// @router /api/v1/me/permissions [get]
func (c *meApiController) permissions(ctx *fiber.Ctx) error {
	who := c.Identity(ctx)
	result := permissionsView{
		UserID:      who.UserID,
		Role:        string(who.Role),
		Permissions: map[string][]string{},
	}
	for module, permissions := range rbac.Instance.GetPermissions(who.Role) {
		for _, permission := range permissions {
			result.Permissions[string(module)] = append(result.Permissions[string(module)], string(permission))
		}
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
