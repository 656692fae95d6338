package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/service/dashboard"
)

type DashboardHandler struct {
	svc dashboard.Service
}

func NewDashboardHandler(svc dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GET /api/doctor/dashboard/summary
func (h *DashboardHandler) Summary(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	sum, err := h.svc.DoctorSummary(c.Context(), uid)
	if err != nil {
		return err
	}
	return response.OK(c, "Summary dashboard berhasil diambil", sum)
}
