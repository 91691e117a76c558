package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	authutils "hire-backend/lib/utils/auth-utils"
)

const (
	TagPid      = "pid"
	TagStatus   = "status"
	TagLatency  = "latency"
	TagMethod   = "method"
	TagPath     = "path"
	TagRoute    = "route"
	TagIP       = "ip"
	TagQuery    = "query"
	TagUA       = "user_agent"
	TagBytesIn  = "bytes_in"
	TagBytesOut = "bytes_out"
	TagUserID   = "user_id"
)

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag computes the value of one log field.
type FuncTag func(c *fiber.Ctx, d *data) interface{}

func getFuncTagMap(cfg Config, d *data) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(_ *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Response().StatusCode()
		},
		TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Path()
		},
		TagRoute: func(c *fiber.Ctx, _ *data) interface{} {
			if r := c.Route(); r != nil {
				return r.Path
			}
			return ""
		},
		TagIP: func(c *fiber.Ctx, _ *data) interface{} {
			return c.IP()
		},
		TagQuery: func(c *fiber.Ctx, _ *data) interface{} {
			return string(c.Request().URI().QueryString())
		},
		TagUA: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		TagBytesIn: func(c *fiber.Ctx, _ *data) interface{} {
			return len(c.Request().Body())
		},
		TagBytesOut: func(c *fiber.Ctx, _ *data) interface{} {
			return len(c.Response().Body())
		},
		TagUserID: func(c *fiber.Ctx, _ *data) interface{} {
			return authutils.ClaimString(authutils.GetClaims(c), "sub")
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}
