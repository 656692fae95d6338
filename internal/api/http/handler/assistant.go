package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/service/assistant"
)

type AssistantHandler struct {
	svc assistant.Service
}

func NewAssistantHandler(svc assistant.Service) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

// GET /api/ai/predict
func (h *AssistantHandler) Predict(c fiber.Ctx) error {
	out, err := h.svc.Predict(c.Context())
	if err != nil {
		return mapAssistantError(err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(out)
}

// POST /api/ai/chat
func (h *AssistantHandler) Chat(c fiber.Ctx) error {
	var body struct {
		Message  string `json:"message" validate:"required"`
		UserName string `json:"user_name"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	out, err := h.svc.Chat(c.Context(), assistant.ChatRequest{Message: body.Message, UserName: body.UserName})
	if err != nil {
		return mapAssistantError(err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(out)
}

func mapAssistantError(err error) error {
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		return response.BadRequest("Pesan wajib diisi")
	case errors.Is(err, assistant.ErrUnavailable):
		return response.Fail(fiber.StatusBadGateway, "Layanan AI tidak tersedia")
	default:
		return err
	}
}
