package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/pkg/midtrans"
	"github.com/roxydental/roxydental_backend/pkg/observability"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	VisitID         uuid.UUID
	PaymentMethod   model.PaymentMethod
	Amount          decimal.Decimal
	PaidAmount      *decimal.Decimal
	ReferenceNumber *string
	Notes           *string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreateRequest, receivedBy uuid.UUID) (*model.Payment, error)
	ListByVisit(ctx context.Context, visitID uuid.UUID) ([]model.Payment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Payment, error)

	// HandleNotification applies a Midtrans status notification to the matching payment.
	HandleNotification(ctx context.Context, n midtrans.Notification) (*model.Payment, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type paymentService struct {
	db        *gorm.DB
	gateway   midtrans.Gateway
	serverKey string
	loc       *time.Location
	metrics   *observability.ClinicMetrics
	now       func() time.Time
}

// New builds the payment service. A nil gateway records non-cash payments as settled
// with the staff-entered reference number.
func New(db *gorm.DB, gateway midtrans.Gateway, serverKey string, loc *time.Location, metrics *observability.ClinicMetrics) Service {
	if loc == nil {
		loc = time.Local
	}
	return &paymentService{
		db:        db,
		gateway:   gateway,
		serverKey: serverKey,
		loc:       loc,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (s *paymentService) Create(ctx context.Context, req CreateRequest, receivedBy uuid.UUID) (*model.Payment, error) {
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidMethod
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	now := s.now()
	online := req.PaymentMethod != model.PaymentCash && s.gateway != nil

	p := model.Payment{
		VisitID:         req.VisitID,
		PaymentMethod:   req.PaymentMethod,
		Amount:          req.Amount,
		PaidAmount:      req.Amount,
		ChangeAmount:    decimal.Zero,
		Status:          model.PaymentPaid,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		PaymentDate:     now.UTC(),
		ReceivedBy:      receivedBy,
	}
	switch {
	case req.PaymentMethod == model.PaymentCash:
		if req.PaidAmount != nil {
			if req.PaidAmount.LessThan(req.Amount) {
				return nil, ErrInsufficientPayment
			}
			p.PaidAmount = *req.PaidAmount
			p.ChangeAmount = req.PaidAmount.Sub(req.Amount)
		}
	case online:
		p.Status = model.PaymentPending
		p.PaidAmount = decimal.Zero
	}

	var visit model.Visit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Patient").Take(&visit, "id = ?", req.VisitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVisitNotFound
			}
			return fmt.Errorf("get visit: %w", err)
		}

		day := now.In(s.loc)
		seq, err := model.NextValue(tx, model.PaymentCounter(day), 0)
		if err != nil {
			return err
		}
		p.PaymentNumber = fmt.Sprintf("PAY%s%04d", day.Format("20060102"), seq)

		if err := tx.Create(&p).Error; err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Checkout is created after commit.
	if online {
		if err := s.openCheckout(ctx, &p, &visit); err != nil {
			return nil, err
		}
	}

	s.metrics.PaymentCreated(ctx, string(p.PaymentMethod), string(p.Status), p.Amount.InexactFloat64())
	return &p, nil
}

func (s *paymentService) openCheckout(ctx context.Context, p *model.Payment, visit *model.Visit) error {
	tx := midtrans.Transaction{
		OrderID:  p.PaymentNumber,
		Amount:   p.Amount.Round(0).IntPart(),
		ItemName: "Kunjungan " + visit.VisitNumber,
		Method:   string(p.PaymentMethod),
	}
	if visit.Patient != nil {
		tx.CustomerName = visit.Patient.FullName
		tx.Phone = visit.Patient.Phone
	}

	checkout, err := s.gateway.CreateCheckout(ctx, tx)
	if err != nil {
		slog.ErrorContext(ctx, "midtrans checkout failed", "payment_number", p.PaymentNumber, "error", err)
		if uerr := s.db.WithContext(ctx).Model(p).Update("status", model.PaymentFailed).Error; uerr != nil {
			slog.ErrorContext(ctx, "mark payment failed", "payment_number", p.PaymentNumber, "error", uerr)
		}
		return fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	err = s.db.WithContext(ctx).Model(p).Updates(map[string]any{
		"snap_token":   checkout.Token,
		"redirect_url": checkout.RedirectURL,
	}).Error
	if err != nil {
		return fmt.Errorf("save checkout: %w", err)
	}
	p.SnapToken, p.RedirectURL = &checkout.Token, &checkout.RedirectURL
	return nil
}

func (s *paymentService) ListByVisit(ctx context.Context, visitID uuid.UUID) ([]model.Payment, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Visit{}).Where("id = ?", visitID).Count(&n).Error; err != nil {
		return nil, fmt.Errorf("check visit: %w", err)
	}
	if n == 0 {
		return nil, ErrVisitNotFound
	}

	payments := []model.Payment{}
	err := s.db.WithContext(ctx).
		Preload("Receiver", func(db *gorm.DB) *gorm.DB { return db.Select("id", "full_name") }).
		Where("visit_id = ?", visitID).
		Order("payment_date DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (s *paymentService) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := s.db.WithContext(ctx).
		Preload("Visit").
		Preload("Visit.Patient").
		Preload("Receiver", func(db *gorm.DB) *gorm.DB { return db.Select("id", "full_name") }).
		Take(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, n midtrans.Notification) (*model.Payment, error) {
	if s.serverKey == "" {
		return nil, ErrGatewayDisabled
	}
	if !n.Verify(s.serverKey) {
		return nil, ErrInvalidSignature
	}

	var (
		p       model.Payment
		settled bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&p, "payment_number = ?", n.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("get payment: %w", err)
		}

		// Settled payments are final; replayed or out-of-order notifications are ignored.
		if p.Status == model.PaymentPaid {
			return nil
		}

		status := model.PaymentStatus(n.Status())
		updates := map[string]any{"status": status}
		if status == model.PaymentPaid {
			updates["paid_amount"] = p.Amount
			if n.TransactionID != "" {
				updates["reference_number"] = n.TransactionID
			}
		}
		if err := tx.Model(&p).Updates(updates).Error; err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}
		settled = status == model.PaymentPaid
		return tx.Take(&p, "id = ?", p.ID).Error
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "midtrans notification applied",
		"payment_number", p.PaymentNumber,
		"transaction_status", n.TransactionStatus,
		"status", p.Status,
	)
	if settled {
		s.metrics.PaymentSettled(ctx, string(p.PaymentMethod), p.Amount.InexactFloat64())
	}
	return &p, nil
}
