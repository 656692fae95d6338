package commission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/model"
)

// Period selects a commission month. Zero fields default to the current month.
type Period struct {
	Month int
	Year  int
}

type Summary struct {
	Total       decimal.Decimal                           `json:"total"`
	ByCategory  map[model.ServiceCategory]decimal.Decimal `json:"byCategory"`
	Commissions []model.Commission                        `json:"commissions"`
}

type CategoryReport struct {
	Category    model.ServiceCategory `json:"category"`
	Total       decimal.Decimal       `json:"total"`
	Commissions []model.Commission    `json:"commissions"`
}

type Service interface {
	Summary(ctx context.Context, userID uuid.UUID, period Period) (*Summary, error)
	ByCategory(ctx context.Context, userID uuid.UUID, category model.ServiceCategory, period Period) (*CategoryReport, error)
}

type commissionService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func New(db *gorm.DB, loc *time.Location) Service {
	if loc == nil {
		loc = time.Local
	}
	return &commissionService{db: db, loc: loc, now: time.Now}
}

func (s *commissionService) resolve(p Period) (Period, error) {
	now := s.now().In(s.loc)
	if p.Month == 0 {
		p.Month = int(now.Month())
	}
	if p.Year == 0 {
		p.Year = now.Year()
	}
	if p.Month < 1 || p.Month > 12 || p.Year < 2000 {
		return p, ErrInvalidPeriod
	}
	return p, nil
}

func (s *commissionService) Summary(ctx context.Context, userID uuid.UUID, period Period) (*Summary, error) {
	p, err := s.resolve(period)
	if err != nil {
		return nil, err
	}

	commissions := []model.Commission{}
	err = s.db.WithContext(ctx).
		Preload("Treatment").
		Preload("Treatment.Service").
		Where("user_id = ? AND period_month = ? AND period_year = ?", userID, p.Month, p.Year).
		Order("created_at DESC").
		Find(&commissions).Error
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}

	out := &Summary{
		Total:       decimal.Zero,
		ByCategory:  map[model.ServiceCategory]decimal.Decimal{},
		Commissions: commissions,
	}
	for _, c := range commissions {
		out.Total = out.Total.Add(c.CommissionAmount)
		if c.Treatment != nil && c.Treatment.Service != nil {
			cat := c.Treatment.Service.Category
			out.ByCategory[cat] = out.ByCategory[cat].Add(c.CommissionAmount)
		}
	}
	return out, nil
}

func (s *commissionService) ByCategory(ctx context.Context, userID uuid.UUID, category model.ServiceCategory, period Period) (*CategoryReport, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	p, err := s.resolve(period)
	if err != nil {
		return nil, err
	}

	commissions := []model.Commission{}
	err = s.db.WithContext(ctx).
		Joins("JOIN treatments ON treatments.id = commissions.treatment_id").
		Joins("JOIN services ON services.id = treatments.service_id").
		Where("commissions.user_id = ? AND commissions.period_month = ? AND commissions.period_year = ?", userID, p.Month, p.Year).
		Where("services.category = ?", category).
		Preload("Treatment").
		Preload("Treatment.Service").
		Preload("Treatment.Visit").
		Preload("Treatment.Visit.Patient").
		Order("commissions.created_at DESC").
		Find(&commissions).Error
	if err != nil {
		return nil, fmt.Errorf("list commissions by category: %w", err)
	}

	total := decimal.Zero
	for _, c := range commissions {
		total = total.Add(c.CommissionAmount)
	}
	return &CategoryReport{Category: category, Total: total, Commissions: commissions}, nil
}
