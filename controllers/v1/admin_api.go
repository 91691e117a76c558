package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hire-backend/controllers"
	applicationhandler "hire-backend/lib/application"
	moderationhandler "hire-backend/lib/moderation"
	apimodels "hire-backend/models/api"
	applicationapimodels "hire-backend/models/api/application"
	moderationapimodels "hire-backend/models/api/moderation"
)

type adminApiController struct {
	controllers.BaseAPIController
}

func InitAdminApiRouters(app fiber.Router) {
	controller := adminApiController{}
	app.Route("admin", func(router fiber.Router) {
		router.Route("employers", func(employerRoute fiber.Router) {
			employerRoute.Get("", controller.listEmployers)
			employerRoute.Put(":id/verify", controller.verifyEmployer)
		})
		router.Route("jobs", func(jobRoute fiber.Router) {
			jobRoute.Get("", controller.listJobs)
			jobRoute.Put(":id/approve", controller.approveJob)
			jobRoute.Delete(":id", controller.deleteJob)
		})
		router.Put("freelancers/:id/verify", controller.verifyFreelancer)
		router.Get("applications", controller.listApplications)
		router.Route("reports", func(reportRoute fiber.Router) {
			reportRoute.Get("", controller.listReports)
			reportRoute.Put(":id", controller.resolveReport)
		})
	})
}

// @Summary Employer profiles
// @Tags Admin
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	status	query	string	false	"verification status"
// @Param	search	query	string	false	"company name or email"
// @Param	page	query	int		false	"page number"
// @Param	limit	query	int		false	"page size"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]employerapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/employers [get]
func (c *adminApiController) listEmployers(ctx *fiber.Ctx) error {
	var filter moderationapimodels.EmployerFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, rowCount, err := moderationhandler.Instance.ListEmployers(c.Identity(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "employer list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Verify employer
// @Tags Admin
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "employer profile ID"
// @Param	body body	 moderationapimodels.VerifyEmployerData	true	"request body"
// @Success 200 {object} apimodels.Response{data=employerapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/employers/{id}/verify [put]
func (c *adminApiController) verifyEmployer(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload moderationapimodels.VerifyEmployerData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := moderationhandler.Instance.VerifyEmployer(c.Identity(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "employer verification failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Jobs for moderation
// @Tags Admin
// @Description Jobs in any status with their application counts
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	status	query	string	false	"job status"
// @Param	search	query	string	false	"text search"
// @Param	page	query	int		false	"page number"
// @Param	limit	query	int		false	"page size"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/jobs [get]
func (c *adminApiController) listJobs(ctx *fiber.Ctx) error {
	var filter moderationapimodels.JobFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, rowCount, err := moderationhandler.Instance.ListJobs(c.Identity(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Moderate job
// @Tags Admin
// @Description Sets the job status directly. Applications of the job are not touched
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "job ID"
// @Param	body body	 moderationapimodels.ApproveJobData	true	"request body"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/jobs/{id}/approve [put]
func (c *adminApiController) approveJob(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload moderationapimodels.ApproveJobData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := moderationhandler.Instance.ApproveJob(c.Identity(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job moderation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary All applications
// @Tags Admin
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	job_id	query	string	false	"job ID"
// @Param	status	query	string	false	"application status"
// @Param	search	query	string	false	"applicant email or job title"
// @Param	page	query	int		false	"page number"
// @Param	limit	query	int		false	"page size"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/applications [get]
func (c *adminApiController) listApplications(ctx *fiber.Ctx) error {
	var filter applicationapimodels.ApplicationFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, rowCount, err := applicationhandler.Instance.ListAll(c.Identity(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "application list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Reports
// @Tags Admin
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	status	query	string	false	"report status"
// @Param	page	query	int		false	"page number"
// @Param	limit	query	int		false	"page size"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]reportapimodels.ReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/reports [get]
func (c *adminApiController) listReports(ctx *fiber.Ctx) error {
	var filter moderationapimodels.ReportFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, rowCount, err := moderationhandler.Instance.ListReports(c.Identity(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "report list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Resolve report
// @Tags Admin
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "report ID"
// @Param	body body	 moderationapimodels.ResolveReportData	true	"request body"
// @Success 200 {object} apimodels.Response{data=reportapimodels.ReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/reports/{id} [put]
func (c *adminApiController) resolveReport(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload moderationapimodels.ResolveReportData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := moderationhandler.Instance.ResolveReport(c.Identity(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "report update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Delete job
// @Tags Admin
// @Description Removes any job together with its applications and chats
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "job ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/jobs/{id} [delete]
func (c *adminApiController) deleteJob(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = moderationhandler.Instance.DeleteJob(c.Identity(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job deletion failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Verify freelancer
// @Tags Admin
// @Description Only verified freelancers are listed in the public directory
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "freelancer profile ID"
// @Param	body body	 moderationapimodels.VerifyFreelancerData	true	"request body"
// @Success 200 {object} apimodels.Response{data=freelancerapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/freelancers/{id}/verify [put]
func (c *adminApiController) verifyFreelancer(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload moderationapimodels.VerifyFreelancerData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := moderationhandler.Instance.VerifyFreelancer(c.Identity(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "freelancer verification failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
