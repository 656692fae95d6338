package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/service/paging"
	"github.com/roxydental/roxydental_backend/pkg/observability"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type PatientInput struct {
	ID             *uuid.UUID
	FullName       string
	DateOfBirth    time.Time
	Gender         model.Gender
	Phone          string
	Email          *string
	Address        *string
	BloodType      *string
	Allergies      *string
	MedicalHistory *string
}

type VisitInput struct {
	VisitDate      *time.Time
	ChiefComplaint *string
	BloodPressure  *string
	Notes          *string
}

type CreateRequest struct {
	Patient PatientInput
	Visit   VisitInput
}

type ListRequest struct {
	Page   int
	Limit  int
	Status *model.VisitStatus
}

type ListResult struct {
	Visits     []model.Visit     `json:"visits"`
	Pagination paging.Pagination `json:"pagination"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreateRequest, nurseID uuid.UUID) (*model.Visit, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Visit, error)
	Queue(ctx context.Context) ([]model.Visit, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.VisitStatus) (*model.Visit, error)
}

type visitService struct {
	db      *gorm.DB
	loc     *time.Location
	metrics *observability.ClinicMetrics
	now     func() time.Time
}

func New(db *gorm.DB, loc *time.Location, metrics *observability.ClinicMetrics) Service {
	if loc == nil {
		loc = time.Local
	}
	return &visitService{db: db, loc: loc, metrics: metrics, now: time.Now}
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

func (s *visitService) Create(ctx context.Context, req CreateRequest, nurseID uuid.UUID) (*model.Visit, error) {
	now := s.now()
	visitDate := now
	if req.Visit.VisitDate != nil && !req.Visit.VisitDate.IsZero() {
		visitDate = *req.Visit.VisitDate
	}

	var v model.Visit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		patientID, err := s.resolvePatient(tx, req.Patient, now)
		if err != nil {
			return err
		}

		// Queue numbers restart every clinic day; visit numbers never do.
		queue, err := model.NextValue(tx, model.QueueCounter(visitDate.In(s.loc)), 0)
		if err != nil {
			return err
		}
		seq, err := model.NextValue(tx, model.CounterVisitNumber, model.VisitNumberBase)
		if err != nil {
			return err
		}

		v = model.Visit{
			VisitNumber:    fmt.Sprintf("V%d", seq),
			PatientID:      patientID,
			NurseID:        nurseID,
			VisitDate:      visitDate.UTC(),
			QueueNumber:    int(queue),
			Status:         model.VisitWaiting,
			ChiefComplaint: req.Visit.ChiefComplaint,
			BloodPressure:  req.Visit.BloodPressure,
			Notes:          req.Visit.Notes,
			TotalCost:      decimal.Zero,
		}
		if err := tx.Create(&v).Error; err != nil {
			return fmt.Errorf("create visit: %w", err)
		}

		return tx.Preload("Patient").Preload("Nurse").Take(&v, "id = ?", v.ID).Error
	})
	if err != nil {
		return nil, err
	}

	s.metrics.VisitCreated(ctx)
	return &v, nil
}

// resolvePatient returns the referenced patient or registers a new one.
func (s *visitService) resolvePatient(tx *gorm.DB, in PatientInput, now time.Time) (uuid.UUID, error) {
	if in.ID != nil {
		var p model.Patient
		if err := tx.Select("id").Take(&p, "id = ?", *in.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, ErrPatientNotFound
			}
			return uuid.Nil, fmt.Errorf("get patient: %w", err)
		}
		return p.ID, nil
	}

	number, err := nextPatientNumber(tx, now)
	if err != nil {
		return uuid.Nil, err
	}

	p := model.Patient{
		PatientNumber:  number,
		FullName:       in.FullName,
		DateOfBirth:    in.DateOfBirth.UTC(),
		Gender:         in.Gender,
		Phone:          in.Phone,
		Email:          in.Email,
		Address:        in.Address,
		BloodType:      in.BloodType,
		Allergies:      in.Allergies,
		MedicalHistory: in.MedicalHistory,
	}
	if err := tx.Create(&p).Error; err != nil {
		return uuid.Nil, fmt.Errorf("create patient: %w", err)
	}
	return p.ID, nil
}

// nextPatientNumber returns P<unix-ms>, bumped past any number already taken.
func nextPatientNumber(tx *gorm.DB, now time.Time) (string, error) {
	ms := now.UnixMilli()
	for {
		number := fmt.Sprintf("P%d", ms)
		var n int64
		if err := tx.Model(&model.Patient{}).Where("patient_number = ?", number).Count(&n).Error; err != nil {
			return "", fmt.Errorf("check patient number: %w", err)
		}
		if n == 0 {
			return number, nil
		}
		ms++
	}
}

func (s *visitService) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	page, limit := paging.Normalize(req.Page, req.Limit)

	q := s.db.WithContext(ctx).Model(&model.Visit{})
	if req.Status != nil {
		q = q.Where("status = ?", *req.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count visits: %w", err)
	}

	visits := []model.Visit{}
	err := q.Preload("Patient").Preload("Nurse").
		Order("visit_date DESC").
		Offset(paging.Offset(page, limit)).Limit(limit).
		Find(&visits).Error
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}

	return &ListResult{Visits: visits, Pagination: paging.New(total, page, limit)}, nil
}

func (s *visitService) Get(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	var v model.Visit
	err := s.db.WithContext(ctx).
		Preload("Patient").
		Preload("Nurse").
		Preload("Treatments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Treatments.Service").
		Preload("Treatments.Performer").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date DESC") }).
		Take(&v, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("get visit: %w", err)
	}
	return &v, nil
}

func (s *visitService) Queue(ctx context.Context) ([]model.Visit, error) {
	start, end := s.today()

	queue := []model.Visit{}
	err := s.db.WithContext(ctx).
		Preload("Patient").
		Where("visit_date >= ? AND visit_date < ?", start, end).
		Where("status IN ?", model.ActiveVisitStatuses).
		Order("queue_number ASC").
		Find(&queue).Error
	if err != nil {
		return nil, fmt.Errorf("get queue: %w", err)
	}
	return queue, nil
}

func (s *visitService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.VisitStatus) (*model.Visit, error) {
	if !status.Valid() {
		return nil, ErrInvalidTransition
	}

	var v model.Visit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&v, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVisitNotFound
			}
			return fmt.Errorf("get visit: %w", err)
		}
		if !v.Status.CanTransition(status) {
			return ErrInvalidTransition
		}
		if err := tx.Model(&v).Update("status", status).Error; err != nil {
			return fmt.Errorf("update visit status: %w", err)
		}
		v.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// today returns the current clinic day as a UTC half-open range.
func (s *visitService) today() (time.Time, time.Time) {
	now := s.now().In(s.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}
