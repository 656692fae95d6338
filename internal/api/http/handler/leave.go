package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/service/leave"
)

type LeaveHandler struct {
	svc leave.Service
	loc *time.Location
}

func NewLeaveHandler(svc leave.Service, loc *time.Location) *LeaveHandler {
	return &LeaveHandler{svc: svc, loc: loc}
}

// GET /api/doctor/leaves
func (h *LeaveHandler) List(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	leaves, err := h.svc.List(c.Context(), uid)
	if err != nil {
		return mapLeaveError(err)
	}
	return response.OK(c, "Daftar cuti berhasil diambil", leaves)
}

// POST /api/doctor/leaves
func (h *LeaveHandler) Create(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	var body struct {
		StartDate string `json:"startDate" validate:"required,isodate"`
		EndDate   string `json:"endDate" validate:"required,isodate"`
		LeaveType string `json:"leaveType" validate:"required,oneof=ANNUAL SICK EMERGENCY OTHER"`
		Reason    string `json:"reason" validate:"required,min=3"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	start, err := parseTime("startDate", body.StartDate, h.loc)
	if err != nil {
		return err
	}
	end, err := parseTime("endDate", body.EndDate, h.loc)
	if err != nil {
		return err
	}

	lr, err := h.svc.Create(c.Context(), uid, leave.CreateRequest{
		StartDate: start,
		EndDate:   end,
		LeaveType: model.LeaveType(body.LeaveType),
		Reason:    body.Reason,
	})
	if err != nil {
		return mapLeaveError(err)
	}
	return response.Created(c, "Pengajuan cuti berhasil", lr)
}

// PATCH /api/doctor/leaves/:id/decision
func (h *LeaveHandler) Decide(c fiber.Ctx) error {
	approverID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var body struct {
		Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	lr, err := h.svc.Decide(c.Context(), id, approverID, model.LeaveStatus(body.Status))
	if err != nil {
		return mapLeaveError(err)
	}
	return response.OK(c, "Pengajuan cuti berhasil diproses", lr)
}

func mapLeaveError(err error) error {
	switch {
	case errors.Is(err, leave.ErrLeaveNotFound):
		return response.NotFound("Pengajuan cuti tidak ditemukan")
	case errors.Is(err, leave.ErrAlreadyDecided):
		return response.BadRequest("Pengajuan cuti sudah diproses")
	case errors.Is(err, leave.ErrInvalidDateRange):
		return response.BadRequest("Tanggal selesai tidak boleh sebelum tanggal mulai")
	case errors.Is(err, leave.ErrInvalidType):
		return response.BadRequest("Jenis cuti tidak valid")
	case errors.Is(err, leave.ErrSelfDecision):
		return response.Forbidden("Tidak dapat memproses pengajuan cuti sendiri")
	case errors.Is(err, leave.ErrInvalidDecision):
		return response.BadRequest("Status harus APPROVED atau REJECTED")
	default:
		return err
	}
}
