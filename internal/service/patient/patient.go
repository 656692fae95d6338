package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/service/paging"
	"github.com/roxydental/roxydental_backend/pkg/observability"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type ListRequest struct {
	Page   int
	Limit  int
	Search string
}

type ListResult struct {
	Patients   []model.Patient   `json:"patients"`
	Pagination paging.Pagination `json:"pagination"`
}

type Records struct {
	Patient    *model.Patient    `json:"patient"`
	Treatments []model.Treatment `json:"treatments"`
}

type CreateTreatmentRequest struct {
	VisitID        uuid.UUID
	ServiceID      uuid.UUID
	ToothNumber    *string
	Diagnosis      *string
	TreatmentNotes *string
	Quantity       int
	Discount       decimal.Decimal
	Images         []string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Records(ctx context.Context, id uuid.UUID) (*Records, error)
	CreateTreatment(ctx context.Context, patientID uuid.UUID, req CreateTreatmentRequest, performerID uuid.UUID) (*model.Treatment, error)
}

type patientService struct {
	db      *gorm.DB
	loc     *time.Location
	metrics *observability.ClinicMetrics
	now     func() time.Time
}

func New(db *gorm.DB, loc *time.Location, metrics *observability.ClinicMetrics) Service {
	if loc == nil {
		loc = time.Local
	}
	return &patientService{db: db, loc: loc, metrics: metrics, now: time.Now}
}

// ---------------------------------------------------------------------------
// Patients
// ---------------------------------------------------------------------------

func (s *patientService) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	page, limit := paging.Normalize(req.Page, req.Limit)

	q := s.db.WithContext(ctx).Model(&model.Patient{})
	if term := strings.TrimSpace(req.Search); term != "" {
		lower := paging.Contains(strings.ToLower(term))
		q = q.Where(`LOWER(full_name) LIKE ? ESCAPE '\' OR LOWER(patient_number) LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\'`,
			lower, lower, paging.Contains(term))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}

	patients := []model.Patient{}
	err := q.Order("created_at DESC").
		Offset(paging.Offset(page, limit)).Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}

	if err := s.attachVisitCounts(ctx, patients); err != nil {
		return nil, err
	}

	return &ListResult{Patients: patients, Pagination: paging.New(total, page, limit)}, nil
}

func (s *patientService) attachVisitCounts(ctx context.Context, patients []model.Patient) error {
	if len(patients) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(patients))
	for i := range patients {
		ids[i] = patients[i].ID
	}

	var rows []struct {
		PatientID uuid.UUID
		N         int64
	}
	err := s.db.WithContext(ctx).Model(&model.Visit{}).
		Select("patient_id, COUNT(*) AS n").
		Where("patient_id IN ?", ids).
		Group("patient_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("count patient visits: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.PatientID] = r.N
	}
	for i := range patients {
		patients[i].Counts = &model.PatientCounts{Visits: counts[patients[i].ID]}
	}
	return nil
}

func (s *patientService) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var p model.Patient
	err := s.db.WithContext(ctx).
		Preload("Visits", func(db *gorm.DB) *gorm.DB { return db.Order("visit_date DESC").Limit(10) }).
		Preload("Visits.Nurse").
		Take(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}

	var visits, treatments int64
	if err := s.db.WithContext(ctx).Model(&model.Visit{}).Where("patient_id = ?", id).Count(&visits).Error; err != nil {
		return nil, fmt.Errorf("count visits: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&model.Treatment{}).Where("patient_id = ?", id).Count(&treatments).Error; err != nil {
		return nil, fmt.Errorf("count treatments: %w", err)
	}
	p.Counts = &model.PatientCounts{Visits: visits, Treatments: &treatments}

	return &p, nil
}

func (s *patientService) Records(ctx context.Context, id uuid.UUID) (*Records, error) {
	var p model.Patient
	if err := s.db.WithContext(ctx).Take(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}

	treatments := []model.Treatment{}
	err := s.db.WithContext(ctx).
		Preload("Visit").
		Preload("Service").
		Preload("Performer").
		Where("patient_id = ?", id).
		Order("created_at DESC").
		Find(&treatments).Error
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}

	return &Records{Patient: &p, Treatments: treatments}, nil
}

// ---------------------------------------------------------------------------
// Treatments
// ---------------------------------------------------------------------------

// CreateTreatment records a treatment, adds its subtotal to the visit total and
// books the performer's commission in one transaction.
func (s *patientService) CreateTreatment(ctx context.Context, patientID uuid.UUID, req CreateTreatmentRequest, performerID uuid.UUID) (*model.Treatment, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if req.Discount.IsNegative() {
		return nil, ErrDiscountExceedsPrice
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	period := s.now().In(s.loc)

	var (
		t   model.Treatment
		svc model.Service
		c   model.Commission
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Take(&model.Patient{}, "id = ?", patientID).Error; err != nil {
			return notFound(err, ErrPatientNotFound, "get patient")
		}

		var visit model.Visit
		if err := tx.Take(&visit, "id = ?", req.VisitID).Error; err != nil {
			return notFound(err, ErrVisitNotFound, "get visit")
		}
		if visit.PatientID != patientID {
			return ErrVisitPatientMismatch
		}

		if err := tx.Take(&svc, "id = ?", req.ServiceID).Error; err != nil {
			return notFound(err, ErrServiceNotFound, "get service")
		}

		subtotal := Subtotal(svc.BasePrice, req.Quantity, req.Discount)
		if subtotal.IsNegative() {
			return ErrDiscountExceedsPrice
		}

		t = model.Treatment{
			VisitID:        visit.ID,
			PatientID:      patientID,
			ServiceID:      svc.ID,
			PerformedBy:    performerID,
			ToothNumber:    req.ToothNumber,
			Diagnosis:      req.Diagnosis,
			TreatmentNotes: req.TreatmentNotes,
			Quantity:       req.Quantity,
			UnitPrice:      svc.BasePrice,
			Discount:       req.Discount,
			Subtotal:       subtotal,
			Images:         images,
		}
		if err := tx.Create(&t).Error; err != nil {
			return fmt.Errorf("create treatment: %w", err)
		}

		if err := tx.Model(&model.Visit{}).Where("id = ?", visit.ID).
			Update("total_cost", gorm.Expr("total_cost + ?", subtotal)).Error; err != nil {
			return fmt.Errorf("update visit total: %w", err)
		}

		c = model.Commission{
			UserID:           performerID,
			TreatmentID:      t.ID,
			BaseAmount:       subtotal,
			CommissionRate:   svc.CommissionRate,
			CommissionAmount: CommissionAmount(subtotal, svc.CommissionRate),
			PeriodMonth:      int(period.Month()),
			PeriodYear:       period.Year(),
			Status:           model.CommissionPending,
		}
		if err := tx.Create(&c).Error; err != nil {
			return fmt.Errorf("create commission: %w", err)
		}

		return tx.Preload("Service").Preload("Performer").Take(&t, "id = ?", t.ID).Error
	})
	if err != nil {
		return nil, err
	}

	s.metrics.TreatmentCreated(ctx, string(svc.Category))
	s.metrics.CommissionRecorded(ctx, string(svc.Category), c.CommissionAmount.InexactFloat64())
	return &t, nil
}

// Subtotal is basePrice × quantity − discount.
func Subtotal(basePrice decimal.Decimal, quantity int, discount decimal.Decimal) decimal.Decimal {
	return basePrice.Mul(decimal.NewFromInt(int64(quantity))).Sub(discount)
}

// CommissionAmount is subtotal × rate / 100, rounded to the cent.
func CommissionAmount(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
}

func notFound(err, sentinel error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}
