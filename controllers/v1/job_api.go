package apiv1

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"hire-backend/controllers"
	applicationhandler "hire-backend/lib/application"
	jobhandler "hire-backend/lib/job"
	moderationhandler "hire-backend/lib/moderation"
	apimodels "hire-backend/models/api"
	applicationapimodels "hire-backend/models/api/application"
	jobapimodels "hire-backend/models/api/job"
	reportapimodels "hire-backend/models/api/report"
)

type jobApiController struct {
	controllers.BaseAPIController
}

func InitJobApiRouters(app fiber.Router) {
	controller := jobApiController{}
	app.Route("jobs", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get("mine", controller.listMine)
		router.Get("saved", controller.listSaved)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("close", controller.close)
			idRoute.Post("save", controller.save)
			idRoute.Delete("save", controller.unsave)
			idRoute.Post("apply", controller.apply)
			idRoute.Get("applications", controller.applications)
			idRoute.Post("report", controller.report)
		})
	})
}

// @Summary Create job
// @Tags Jobs
// @Description Creates a job listing, pending moderation unless auto approval applies
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobData	true	"request body"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs [post]
func (c *jobApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := jobhandler.Instance.Create(c.Identity(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job creation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Public job list
// @Tags Jobs
// @Description Approved jobs, newest first. Token is optional
// @Param	search			query	string	false	"text search"
// @Param	category		query	string	false	"category"
// @Param	location		query	string	false	"location"
// @Param	employment_type	query	string	false	"employment type"
// @Param	listing_type	query	string	false	"listing type"
// @Param	salary_from		query	int		false	"minimum salary"
// @Param	salary_to		query	int		false	"maximum salary"
// @Param	page			query	int		false	"page number"
// @Param	limit			query	int		false	"page size"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs [get]
func (c *jobApiController) list(ctx *fiber.Ctx) error {
	var filter jobapimodels.JobFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, rowCount, err := jobhandler.Instance.List(c.Identity(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Job details
// @Tags Jobs
// @Description Approved jobs are public, other statuses are visible to the owner and admins
// @Param   id          		path    string  true         "job ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id} [get]
func (c *jobApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := jobhandler.Instance.Get(c.Identity(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Own jobs
// @Tags Jobs
// @Description Every job of the calling employer in any status
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]jobapimodels.JobView}
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/mine [get]
func (c *jobApiController) listMine(ctx *fiber.Ctx) error {
	resp, err := jobhandler.Instance.ListMine(c.Identity(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Update job
// @Tags Jobs
// @Description Owner only, the status is not changed
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "job ID"
// @Param	body body	 jobapimodels.JobUpdateData	true	"request body, only present fields are written"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id} [put]
func (c *jobApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload jobapimodels.JobUpdateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := jobhandler.Instance.Update(c.Identity(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Close job
// @Tags Jobs
// @Description Owner only, approved jobs move to closed
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "job ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id}/close [put]
func (c *jobApiController) close(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = jobhandler.Instance.Close(c.Identity(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job closing failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete job
// @Tags Jobs
// @Description Owner only, removes applications and chats of the job
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "job ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id} [delete]
func (c *jobApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = jobhandler.Instance.Delete(c.Identity(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job deletion failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Save job
// @Tags Saved jobs
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "job ID"
// @Success 200 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id}/save [post]
func (c *jobApiController) save(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = jobhandler.Instance.Save(c.Identity(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job saving failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Remove saved job
// @Tags Saved jobs
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "job ID"
// @Success 200 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id}/save [delete]
func (c *jobApiController) unsave(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = jobhandler.Instance.Unsave(c.Identity(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "saved job removal failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Saved jobs
// @Tags Saved jobs
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]jobapimodels.JobView}
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/saved [get]
func (c *jobApiController) listSaved(ctx *fiber.Ctx) error {
	resp, err := jobhandler.Instance.ListSaved(c.Identity(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "saved job list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Apply to job
// @Tags Applications
// @Description JSON body or multipart form with an optional "resume" file
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "job ID"
// @Param	body body	 applicationapimodels.ApplyData	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id}/apply [post]
func (c *jobApiController) apply(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload applicationapimodels.ApplyData
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return c.SendBadRequest(ctx, err)
		}
	}
	resume, err := c.resumeFile(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := applicationhandler.Instance.Apply(ctx.UserContext(), c.Identity(ctx), id, payload, resume)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "application failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Applications of a job
// @Tags Applications
// @Description Owner only
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "job ID"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id}/applications [get]
func (c *jobApiController) applications(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := applicationhandler.Instance.ListByJob(c.Identity(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "application list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Report job
// @Tags Reports
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "job ID"
// @Param	body body	 reportapimodels.ReportData	true	"request body"
// @Success 200 {object} apimodels.Response{data=reportapimodels.ReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id}/report [post]
func (c *jobApiController) report(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload reportapimodels.ReportData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := moderationhandler.Instance.ReportJob(c.Identity(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "report failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// resumeFile reads the optional "resume" part of a multipart apply request.
func (c *jobApiController) resumeFile(ctx *fiber.Ctx) (*applicationapimodels.ResumeFile, error) {
	if !strings.HasPrefix(string(ctx.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	file, err := ctx.FormFile("resume")
	if err != nil {
		// the form carries no resume part
		return nil, nil
	}
	buffer, err := file.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open resume")
	}
	defer buffer.Close()
	body, err := io.ReadAll(buffer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read resume")
	}
	return &applicationapimodels.ResumeFile{
		Name:        file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Size:        file.Size,
		Body:        body,
	}, nil
}
