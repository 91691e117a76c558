package fiberlog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Logger falls back to the logrus standard logger when nil.
	Logger *logrus.Logger
	Tags   []string
	// Skip drops the log line for matching requests.
	Skip func(c *fiber.Ctx) bool
}

var ConfigDefault = Config{
	Tags: []string{TagMethod, TagPath, TagStatus, TagLatency, TagIP, TagUserID},
	Skip: SkipPreflight,
}

// SkipPreflight ignores CORS preflight requests.
func SkipPreflight(c *fiber.Ctx) bool {
	return c.Method() == fiber.MethodOptions
}
