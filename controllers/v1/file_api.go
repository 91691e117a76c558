package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"hire-backend/controllers"
	filestorage "hire-backend/lib/file-storage"
)

type fileApiController struct {
	controllers.BaseAPIController
}

func InitFileApiRouters(app fiber.Router) {
	controller := fileApiController{}
	app.Get("files/:folder/:name", controller.download)
}

// @Summary Download file
// @Tags Files
// @Description Resumes and chat attachments by their stored reference
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   folder         		path    string  true         "folder"
// @Param   name          		path    string  true         "object name"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/files/{folder}/{name} [get]
func (c *fileApiController) download(ctx *fiber.Ctx) error {
	folder := ctx.Params("folder")
	if folder != filestorage.FolderResume && folder != filestorage.FolderChat {
		return c.SendBadRequest(ctx, errors.New("unknown folder"))
	}
	body, contentType, err := filestorage.Instance.Get(ctx.UserContext(), folder+"/"+ctx.Params("name"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "file read failed")
	}
	if contentType != "" {
		ctx.Set(fiber.HeaderContentType, contentType)
	}
	ctx.Set(fiber.HeaderContentDisposition, `inline; filename="`+ctx.Params("name")+`"`)
	return ctx.SendStream(body)
}
