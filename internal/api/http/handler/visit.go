package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/service/visit"
)

type VisitHandler struct {
	svc visit.Service
	loc *time.Location
}

func NewVisitHandler(svc visit.Service, loc *time.Location) *VisitHandler {
	return &VisitHandler{svc: svc, loc: loc}
}

type visitPatientBody struct {
	ID             *string `json:"id" validate:"omitempty,uuid"`
	FullName       string  `json:"fullName" validate:"required_without=ID,omitempty,min=3"`
	DateOfBirth    string  `json:"dateOfBirth" validate:"required_without=ID,omitempty,isodate"`
	Gender         string  `json:"gender" validate:"required_without=ID,omitempty,oneof=L P"`
	Phone          string  `json:"phone" validate:"required_without=ID,omitempty,min=10,phone"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Address        *string `json:"address"`
	BloodType      *string `json:"bloodType" validate:"omitempty,max=5"`
	Allergies      *string `json:"allergies"`
	MedicalHistory *string `json:"medicalHistory"`
}

type visitBody struct {
	VisitDate      *string `json:"visitDate" validate:"omitempty,isodate"`
	ChiefComplaint *string `json:"chiefComplaint"`
	BloodPressure  *string `json:"bloodPressure"`
	Notes          *string `json:"notes"`
}

// POST /api/doctor/visits
func (h *VisitHandler) Create(c fiber.Ctx) error {
	nurseID, err := callerID(c)
	if err != nil {
		return err
	}

	var body struct {
		Patient visitPatientBody `json:"patient" validate:"required"`
		Visit   visitBody        `json:"visit"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	req := visit.CreateRequest{
		Patient: visit.PatientInput{
			FullName:       body.Patient.FullName,
			Gender:         model.Gender(body.Patient.Gender),
			Phone:          body.Patient.Phone,
			Email:          body.Patient.Email,
			Address:        body.Patient.Address,
			BloodType:      body.Patient.BloodType,
			Allergies:      body.Patient.Allergies,
			MedicalHistory: body.Patient.MedicalHistory,
		},
		Visit: visit.VisitInput{
			ChiefComplaint: body.Visit.ChiefComplaint,
			BloodPressure:  body.Visit.BloodPressure,
			Notes:          body.Visit.Notes,
		},
	}
	if body.Patient.ID != nil {
		id := uuid.MustParse(*body.Patient.ID)
		req.Patient.ID = &id
	} else {
		dob, err := parseTime("dateOfBirth", body.Patient.DateOfBirth, h.loc)
		if err != nil {
			return err
		}
		req.Patient.DateOfBirth = dob
	}
	if req.Visit.VisitDate, err = parseOptionalTime("visitDate", body.Visit.VisitDate, h.loc); err != nil {
		return err
	}

	v, err := h.svc.Create(c.Context(), req, nurseID)
	if err != nil {
		return mapVisitError(err)
	}
	return response.Created(c, "Kunjungan berhasil ditambahkan", v)
}

// GET /api/doctor/visits
func (h *VisitHandler) List(c fiber.Ctx) error {
	req := visit.ListRequest{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 10),
	}
	if s := c.Query("status"); s != "" {
		status := model.VisitStatus(s)
		if !status.Valid() {
			return response.BadRequest("Status kunjungan tidak valid")
		}
		req.Status = &status
	}

	res, err := h.svc.List(c.Context(), req)
	if err != nil {
		return mapVisitError(err)
	}
	return response.OK(c, "Daftar kunjungan berhasil diambil", res)
}

// GET /api/doctor/visits/:id
func (h *VisitHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	v, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapVisitError(err)
	}
	return response.OK(c, "Detail kunjungan berhasil diambil", v)
}

// GET /api/doctor/visits/queue
func (h *VisitHandler) Queue(c fiber.Ctx) error {
	queue, err := h.svc.Queue(c.Context())
	if err != nil {
		return mapVisitError(err)
	}
	return response.OK(c, "Daftar antrian berhasil diambil", queue)
}

// PATCH /api/doctor/visits/:id/status
func (h *VisitHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var body struct {
		Status string `json:"status" validate:"required,oneof=WAITING IN_PROGRESS COMPLETED CANCELLED"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	v, err := h.svc.UpdateStatus(c.Context(), id, model.VisitStatus(body.Status))
	if err != nil {
		return mapVisitError(err)
	}
	return response.OK(c, "Status kunjungan berhasil diperbarui", v)
}

func mapVisitError(err error) error {
	switch {
	case errors.Is(err, visit.ErrVisitNotFound):
		return response.NotFound("Kunjungan tidak ditemukan")
	case errors.Is(err, visit.ErrPatientNotFound):
		return response.NotFound("Pasien tidak ditemukan")
	case errors.Is(err, visit.ErrInvalidTransition):
		return response.BadRequest("Status kunjungan tidak valid")
	default:
		return err
	}
}
