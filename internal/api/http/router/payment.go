package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/roxydental/roxydental_backend/internal/api/http/handler"
	"github.com/roxydental/roxydental_backend/pkg/authorize"
)

func (r *Router) registerPaymentRoutes(api fiber.Router, h *handler.PaymentHandler, authRequired fiber.Handler, requirePerm permFunc) {
	payments := api.Group("/payments")

	// Called by Midtrans; authenticated by signature instead of a token.
	payments.Post("/midtrans/notification", h.Notification)

	payments.Post("/", authRequired, requirePerm(authorize.ResourcePayment, authorize.ActionCreate), h.Create)
	payments.Get("/visit/:visitId", authRequired, requirePerm(authorize.ResourcePayment, authorize.ActionList), h.ListByVisit)
	payments.Get("/:id", authRequired, requirePerm(authorize.ResourcePayment, authorize.ActionRead), h.Get)
}

func (r *Router) registerAssistantRoutes(api fiber.Router, h *handler.AssistantHandler, authRequired fiber.Handler, requirePerm permFunc) {
	ai := api.Group("/ai", authRequired, requirePerm(authorize.ResourceAssistant, authorize.ActionRead))
	ai.Get("/predict", h.Predict)
	ai.Post("/chat", h.Chat)
}
