package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/roxydental/roxydental_backend/pkg/reqctx"
)

const (
	HeaderRequestID = "X-Request-Id"
	LocalRequestID  = "request_id"

	maxRequestIDLen = 64
)

// RequestID tags every request with an id, echoed back in X-Request-Id, and
// stores the request metadata on the context for the log handler.
func RequestID() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := inboundRequestID(c.Get(HeaderRequestID))
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)

		meta := &reqctx.RequestMeta{
			RequestID:   id,
			ClientIP:    c.IP(),
			UserAgent:   c.Get(fiber.HeaderUserAgent),
			Method:      c.Method(),
			Path:        c.Path(),
			RequestedAt: time.Now(),
		}
		c.SetContext(reqctx.WithRequestMeta(c.Context(), meta))
		return c.Next()
	}
}

// inboundRequestID keeps a caller-supplied id only when it is short printable
// ASCII; anything else is replaced so it cannot pollute log lines.
func inboundRequestID(v string) string {
	if v == "" || len(v) > maxRequestIDLen {
		return newRequestID()
	}
	for i := 0; i < len(v); i++ {
		if v[i] < 0x21 || v[i] > 0x7e {
			return newRequestID()
		}
	}
	return v
}

func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
