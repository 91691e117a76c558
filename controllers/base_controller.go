package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hire-backend/lib/errs"
	"hire-backend/lib/identity"
	"hire-backend/middleware"
	apimodels "hire-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("request body parsing failed")
		return errors.New("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) QueryParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.QueryParser(out); err != nil {
		log.WithError(err).Error("request query parsing failed")
		return errors.New("failed to read query parameters")
	}
	return nil
}

// GetID reads a uuid path parameter, ":id" unless another name is given.
func (c *BaseAPIController) GetID(ctx *fiber.Ctx, name ...string) (string, error) {
	param := "id"
	if len(name) != 0 {
		param = name[0]
	}
	id := ctx.Params(param)
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.Errorf("invalid %s", param)
	}
	return id, nil
}

func (c *BaseAPIController) Identity(ctx *fiber.Ctx) identity.Identity {
	return middleware.GetIdentity(ctx)
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if userID := middleware.GetUserID(ctx); userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

// SendError writes typed errors with their status and message.
// Anything else is logged and answered with a 500 and the generic message.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, message string) error {
	status := errs.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithError(err).Error(message)
		return ctx.Status(status).JSON(apimodels.NewError(message))
	}
	logger.WithError(err).Debug(message)
	return ctx.Status(status).JSON(apimodels.NewError(errs.Message(err)))
}

func (c *BaseAPIController) SendBadRequest(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
}
