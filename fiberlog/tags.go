package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	TagPid     = "pid"
	TagStatus  = "status"
	TagLatency = "latency"
	TagMethod  = "method"
	TagPath    = "path"
	TagIP      = "ip"
	TagBody    = "body"
	TagResBody = "res_body"
	RequestID  = "request_id"
)

// FuncTag resolves a log field value from the request context.
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

func getFuncTagMap(cfg Config, d *data) map[string]FuncTag {
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		switch tag {
		case TagPid:
			result[TagPid] = func(c *fiber.Ctx, d *data) interface{} {
				return d.pid
			}
		case TagStatus:
			result[TagStatus] = func(c *fiber.Ctx, d *data) interface{} {
				return c.Response().StatusCode()
			}
		case TagLatency:
			result[TagLatency] = func(c *fiber.Ctx, d *data) interface{} {
				return d.end.Sub(d.start).String()
			}
		case TagMethod:
			result[TagMethod] = func(c *fiber.Ctx, d *data) interface{} {
				return c.Method()
			}
		case TagPath:
			result[TagPath] = func(c *fiber.Ctx, d *data) interface{} {
				return c.Path()
			}
		case TagIP:
			result[TagIP] = func(c *fiber.Ctx, d *data) interface{} {
				return c.IP()
			}
		case TagBody:
			result[TagBody] = func(c *fiber.Ctx, d *data) interface{} {
				return string(c.Body())
			}
		case TagResBody:
			result[TagResBody] = func(c *fiber.Ctx, d *data) interface{} {
				return string(c.Response().Body())
			}
		case RequestID:
			result[RequestID] = func(c *fiber.Ctx, d *data) interface{} {
				id := c.Get(fiber.HeaderXRequestID)
				if id == "" {
					id = uuid.NewString()
				}
				return id
			}
		}
	}
	return result
}
