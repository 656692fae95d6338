package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/service/commission"
)

type CommissionHandler struct {
	svc commission.Service
}

func NewCommissionHandler(svc commission.Service) *CommissionHandler {
	return &CommissionHandler{svc: svc}
}

func period(c fiber.Ctx) commission.Period {
	return commission.Period{Month: queryInt(c, "month", 0), Year: queryInt(c, "year", 0)}
}

// GET /api/doctor/finance/commissions/summary
func (h *CommissionHandler) Summary(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	sum, err := h.svc.Summary(c.Context(), uid, period(c))
	if err != nil {
		return mapCommissionError(err)
	}
	return response.OK(c, "Summary komisi berhasil diambil", sum)
}

// ByCategory serves one of the per-category routes (/services, /pharmacy, /packages, /labs).
func (h *CommissionHandler) ByCategory(category model.ServiceCategory, msg string) fiber.Handler {
	return func(c fiber.Ctx) error {
		uid, err := callerID(c)
		if err != nil {
			return err
		}

		rep, err := h.svc.ByCategory(c.Context(), uid, category, period(c))
		if err != nil {
			return mapCommissionError(err)
		}
		return response.OK(c, msg, rep)
	}
}

func mapCommissionError(err error) error {
	switch {
	case errors.Is(err, commission.ErrInvalidPeriod):
		return response.BadRequest("Periode tidak valid")
	case errors.Is(err, commission.ErrInvalidCategory):
		return response.BadRequest("Kategori layanan tidak valid")
	default:
		return err
	}
}
