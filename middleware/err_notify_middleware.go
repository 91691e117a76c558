package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	apimodels "hire-backend/models/api"
)

type errNotifyPayload struct {
	Code   int    `json:"code"`
	Method string `json:"method"`
	Path   string `json:"path"`
	UserID string `json:"user_id,omitempty"`
	Error  string `json:"error"`
}

var errNotifyClient = &http.Client{Timeout: 5 * time.Second}

// ErrNotify posts every 5xx response to the webhook at addr.
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if addr == "" {
			return err
		}
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}
		resp := apimodels.Response{}
		if unmErr := json.Unmarshal(c.Response().Body(), &resp); unmErr != nil {
			resp.Message = string(c.Response().Body())
		}
		payload := errNotifyPayload{
			Code:   statusCode,
			Method: c.Method(),
			Path:   c.OriginalURL(),
			UserID: GetUserID(c),
			Error:  resp.Message,
		}
		if r := c.Route(); r != nil {
			payload.Path = r.Path
		}
		go func() {
			body, _ := json.Marshal(payload)
			res, reqErr := errNotifyClient.Post(addr, fiber.MIMEApplicationJSON, bytes.NewReader(body))
			if reqErr != nil {
				log.WithError(reqErr).Warn("error notify: sending failed")
				return
			}
			res.Body.Close()
		}()
		return err
	}
}
