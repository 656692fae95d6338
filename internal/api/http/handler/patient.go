package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/service/patient"
)

type PatientHandler struct {
	svc patient.Service
}

func NewPatientHandler(svc patient.Service) *PatientHandler {
	return &PatientHandler{svc: svc}
}

// GET /api/doctor/patients
func (h *PatientHandler) List(c fiber.Ctx) error {
	res, err := h.svc.List(c.Context(), patient.ListRequest{
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
		Search: c.Query("search"),
	})
	if err != nil {
		return mapPatientError(err)
	}
	return response.OK(c, "Daftar pasien berhasil diambil", res)
}

// GET /api/doctor/patients/:id
func (h *PatientHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapPatientError(err)
	}
	return response.OK(c, "Detail pasien berhasil diambil", p)
}

// GET /api/doctor/patients/:id/records
func (h *PatientHandler) Records(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	rec, err := h.svc.Records(c.Context(), id)
	if err != nil {
		return mapPatientError(err)
	}
	return response.OK(c, "Rekam medis berhasil diambil", rec)
}

// POST /api/doctor/patients/:id/records
func (h *PatientHandler) CreateTreatment(c fiber.Ctx) error {
	performerID, err := callerID(c)
	if err != nil {
		return err
	}
	patientID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var body struct {
		VisitID        string           `json:"visitId" validate:"required,uuid"`
		ServiceID      string           `json:"serviceId" validate:"required,uuid"`
		ToothNumber    *string          `json:"toothNumber" validate:"omitempty,max=10"`
		Diagnosis      *string          `json:"diagnosis"`
		TreatmentNotes *string          `json:"treatmentNotes"`
		Quantity       *int             `json:"quantity" validate:"omitempty,min=1"`
		Discount       *decimal.Decimal `json:"discount"`
		Images         []string         `json:"images" validate:"omitempty,dive,url"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	req := patient.CreateTreatmentRequest{
		VisitID:        uuid.MustParse(body.VisitID),
		ServiceID:      uuid.MustParse(body.ServiceID),
		ToothNumber:    body.ToothNumber,
		Diagnosis:      body.Diagnosis,
		TreatmentNotes: body.TreatmentNotes,
		Quantity:       1,
		Images:         body.Images,
	}
	if body.Quantity != nil {
		req.Quantity = *body.Quantity
	}
	if body.Discount != nil {
		if body.Discount.IsNegative() {
			return response.BadRequest("Diskon tidak boleh negatif")
		}
		req.Discount = *body.Discount
	}

	t, err := h.svc.CreateTreatment(c.Context(), patientID, req, performerID)
	if err != nil {
		return mapPatientError(err)
	}
	return response.Created(c, "Tindakan berhasil ditambahkan", t)
}

func mapPatientError(err error) error {
	switch {
	case errors.Is(err, patient.ErrPatientNotFound):
		return response.NotFound("Pasien tidak ditemukan")
	case errors.Is(err, patient.ErrVisitNotFound):
		return response.NotFound("Kunjungan tidak ditemukan")
	case errors.Is(err, patient.ErrServiceNotFound):
		return response.NotFound("Layanan tidak ditemukan")
	case errors.Is(err, patient.ErrVisitPatientMismatch):
		return response.BadRequest("Kunjungan bukan milik pasien ini")
	case errors.Is(err, patient.ErrDiscountExceedsPrice):
		return response.BadRequest("Diskon melebihi harga")
	case errors.Is(err, patient.ErrInvalidQuantity):
		return response.BadRequest("Jumlah minimal 1")
	default:
		return err
	}
}
