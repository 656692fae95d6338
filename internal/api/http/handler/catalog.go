package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/service/catalog"
)

type CatalogHandler struct {
	svc catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// GET /api/doctor/services
func (h *CatalogHandler) List(c fiber.Ctx) error {
	var category *model.ServiceCategory
	if s := c.Query("category"); s != "" {
		cat := model.ServiceCategory(s)
		if !cat.Valid() {
			return response.BadRequest("Kategori layanan tidak valid")
		}
		category = &cat
	}

	services, err := h.svc.List(c.Context(), category)
	if err != nil {
		return mapCatalogError(err)
	}
	return response.OK(c, "Daftar layanan berhasil diambil", services)
}

// POST /api/doctor/services
func (h *CatalogHandler) Create(c fiber.Ctx) error {
	var body struct {
		ServiceCode    string          `json:"serviceCode" validate:"required,max=32"`
		ServiceName    string          `json:"serviceName" validate:"required,min=3"`
		Category       string          `json:"category" validate:"required,oneof=CONSULTATION PHARMACY ORTHODONTIC OTHER"`
		BasePrice      decimal.Decimal `json:"basePrice"`
		CommissionRate decimal.Decimal `json:"commissionRate"`
		Description    *string         `json:"description"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	s, err := h.svc.Create(c.Context(), catalog.CreateRequest{
		ServiceCode:    body.ServiceCode,
		ServiceName:    body.ServiceName,
		Category:       model.ServiceCategory(body.Category),
		BasePrice:      body.BasePrice,
		CommissionRate: body.CommissionRate,
		Description:    body.Description,
	})
	if err != nil {
		return mapCatalogError(err)
	}
	return response.Created(c, "Layanan berhasil ditambahkan", s)
}

func mapCatalogError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrCodeExists):
		return response.BadRequest("Kode layanan sudah digunakan")
	case errors.Is(err, catalog.ErrInvalidCategory):
		return response.BadRequest("Kategori layanan tidak valid")
	case errors.Is(err, catalog.ErrInvalidPrice):
		return response.BadRequest("Harga tidak boleh negatif")
	case errors.Is(err, catalog.ErrInvalidRate):
		return response.BadRequest("Persentase komisi harus antara 0 dan 100")
	default:
		return err
	}
}
