package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// requestFields evaluates every tag, empty strings are left out.
func requestFields(tags map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	fields := log.Fields{}
	for key, tag := range tags {
		switch value := tag(c, d).(type) {
		case string:
			if value != "" {
				fields[key] = value
			}
		default:
			fields[key] = value
		}
	}
	return fields
}

// New returns the request log middleware.
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) != 0 {
		cfg = config[0]
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg, &data{})
	return func(c *fiber.Ctx) error {
		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		d.end = time.Now()
		if cfg.Skip != nil && cfg.Skip(c) {
			return err
		}

		fields := requestFields(ftm, c, d)
		entity := log.WithFields(fields)
		if cfg.Logger != nil {
			entity = cfg.Logger.WithFields(fields)
		}
		status := c.Response().StatusCode()
		switch {
		case status >= fiber.StatusInternalServerError:
			entity.Error("api request")
		case status >= fiber.StatusBadRequest:
			entity.Warn("api request")
		default:
			entity.Info("api request")
		}
		return err
	}
}
