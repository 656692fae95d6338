package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/service/payment"
	"github.com/roxydental/roxydental_backend/pkg/midtrans"
)

type PaymentHandler struct {
	svc payment.Service
}

func NewPaymentHandler(svc payment.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// POST /api/payments
func (h *PaymentHandler) Create(c fiber.Ctx) error {
	receiverID, err := callerID(c)
	if err != nil {
		return err
	}

	var body struct {
		VisitID         string           `json:"visitId" validate:"required,uuid"`
		PaymentMethod   string           `json:"paymentMethod" validate:"required,oneof=CASH TRANSFER DEBIT CREDIT QRIS"`
		Amount          decimal.Decimal  `json:"amount"`
		PaidAmount      *decimal.Decimal `json:"paidAmount"`
		ReferenceNumber *string          `json:"referenceNumber"`
		Notes           *string          `json:"notes"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	p, err := h.svc.Create(c.Context(), payment.CreateRequest{
		VisitID:         uuid.MustParse(body.VisitID),
		PaymentMethod:   model.PaymentMethod(body.PaymentMethod),
		Amount:          body.Amount,
		PaidAmount:      body.PaidAmount,
		ReferenceNumber: body.ReferenceNumber,
		Notes:           body.Notes,
	}, receiverID)
	if err != nil {
		return mapPaymentError(err)
	}
	return response.Created(c, "Pembayaran berhasil dibuat", p)
}

// GET /api/payments/visit/:visitId
func (h *PaymentHandler) ListByVisit(c fiber.Ctx) error {
	visitID, err := paramID(c, "visitId")
	if err != nil {
		return err
	}

	payments, err := h.svc.ListByVisit(c.Context(), visitID)
	if err != nil {
		return mapPaymentError(err)
	}
	return response.OK(c, "Daftar pembayaran berhasil diambil", payments)
}

// GET /api/payments/:id
func (h *PaymentHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapPaymentError(err)
	}
	return response.OK(c, "Detail pembayaran berhasil diambil", p)
}

// POST /api/payments/midtrans/notification (public, signature-checked)
func (h *PaymentHandler) Notification(c fiber.Ctx) error {
	var n midtrans.Notification
	if err := c.Bind().JSON(&n); err != nil {
		return response.BadRequest("Format request tidak valid")
	}

	p, err := h.svc.HandleNotification(c.Context(), n)
	if err != nil {
		return mapPaymentError(err)
	}
	return response.OK(c, "Notifikasi pembayaran diproses", fiber.Map{
		"paymentNumber": p.PaymentNumber,
		"status":        p.Status,
	})
}

func mapPaymentError(err error) error {
	switch {
	case errors.Is(err, payment.ErrPaymentNotFound):
		return response.NotFound("Pembayaran tidak ditemukan")
	case errors.Is(err, payment.ErrVisitNotFound):
		return response.NotFound("Kunjungan tidak ditemukan")
	case errors.Is(err, payment.ErrInvalidMethod):
		return response.BadRequest("Metode pembayaran tidak valid")
	case errors.Is(err, payment.ErrInvalidAmount):
		return response.BadRequest("Jumlah pembayaran harus lebih dari 0")
	case errors.Is(err, payment.ErrInsufficientPayment):
		return response.BadRequest("Jumlah bayar kurang")
	case errors.Is(err, payment.ErrGatewayFailure):
		return response.Fail(fiber.StatusBadGateway, "Gagal membuat transaksi pembayaran")
	case errors.Is(err, payment.ErrGatewayDisabled):
		return response.Fail(fiber.StatusServiceUnavailable, "Pembayaran online belum dikonfigurasi")
	case errors.Is(err, payment.ErrInvalidSignature):
		return response.Forbidden("Signature tidak valid")
	default:
		return err
	}
}
