package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/service/scheduling"
)

type ScheduleHandler struct {
	svc scheduling.Service
	loc *time.Location
}

func NewScheduleHandler(svc scheduling.Service, loc *time.Location) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, loc: loc}
}

// GET /api/doctor/schedules
func (h *ScheduleHandler) List(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	var typ *model.ScheduleType
	if s := c.Query("type"); s != "" {
		t := model.ScheduleType(s)
		if !t.Valid() {
			return response.BadRequest("Tipe jadwal tidak valid")
		}
		typ = &t
	}

	schedules, err := h.svc.List(c.Context(), uid, typ)
	if err != nil {
		return mapScheduleError(err)
	}
	return response.OK(c, "Jadwal berhasil diambil", schedules)
}

// POST /api/doctor/schedules
func (h *ScheduleHandler) Create(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	var body struct {
		Title             string  `json:"title" validate:"required,min=3"`
		Description       *string `json:"description"`
		ScheduleType      string  `json:"scheduleType" validate:"required,oneof=SHIFT ACTIVITY MEETING"`
		StartDatetime     string  `json:"startDatetime" validate:"required,isodate"`
		EndDatetime       string  `json:"endDatetime" validate:"required,isodate"`
		Location          *string `json:"location"`
		IsRecurring       *bool   `json:"isRecurring"`
		RecurrencePattern *string `json:"recurrencePattern"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	start, err := parseTime("startDatetime", body.StartDatetime, h.loc)
	if err != nil {
		return err
	}
	end, err := parseTime("endDatetime", body.EndDatetime, h.loc)
	if err != nil {
		return err
	}

	s, err := h.svc.Create(c.Context(), uid, scheduling.CreateRequest{
		Title:             body.Title,
		Description:       body.Description,
		ScheduleType:      model.ScheduleType(body.ScheduleType),
		StartDatetime:     start,
		EndDatetime:       end,
		Location:          body.Location,
		IsRecurring:       body.IsRecurring,
		RecurrencePattern: body.RecurrencePattern,
	})
	if err != nil {
		return mapScheduleError(err)
	}
	return response.Created(c, "Jadwal berhasil ditambahkan", s)
}

// GET /api/doctor/schedules/activities
func (h *ScheduleHandler) Activities(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	out, err := h.svc.Activities(c.Context(), uid)
	if err != nil {
		return mapScheduleError(err)
	}
	return response.OK(c, "Aktivitas berhasil diambil", out)
}

// GET /api/doctor/schedules/meetings
func (h *ScheduleHandler) Meetings(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	out, err := h.svc.Meetings(c.Context(), uid)
	if err != nil {
		return mapScheduleError(err)
	}
	return response.OK(c, "Jadwal pertemuan berhasil diambil", out)
}

func mapScheduleError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrInvalidTimeRange):
		return response.BadRequest("Waktu selesai harus setelah waktu mulai")
	case errors.Is(err, scheduling.ErrInvalidType):
		return response.BadRequest("Tipe jadwal tidak valid")
	default:
		return err
	}
}
