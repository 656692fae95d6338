package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/model"
)

type Summary struct {
	TodayVisits       int64           `json:"todayVisits"`
	ActiveQueue       int64           `json:"activeQueue"`
	TotalPatients     int64           `json:"totalPatients"`
	MonthlyCommission decimal.Decimal `json:"monthlyCommission"`
}

type Service interface {
	DoctorSummary(ctx context.Context, userID uuid.UUID) (*Summary, error)
}

type dashboardService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func New(db *gorm.DB, loc *time.Location) Service {
	if loc == nil {
		loc = time.Local
	}
	return &dashboardService{db: db, loc: loc, now: time.Now}
}

// DoctorSummary runs the four aggregates concurrently; the first failure cancels the rest.
func (s *dashboardService) DoctorSummary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	now := s.now().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var out Summary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.db.WithContext(gctx).Model(&model.Visit{}).
			Where("visit_date >= ? AND visit_date < ?", dayStart.UTC(), dayEnd.UTC()).
			Count(&out.TodayVisits).Error
		if err != nil {
			return fmt.Errorf("count today visits: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.db.WithContext(gctx).Model(&model.Visit{}).
			Where("visit_date >= ? AND visit_date < ?", dayStart.UTC(), dayEnd.UTC()).
			Where("status IN ?", model.ActiveVisitStatuses).
			Count(&out.ActiveQueue).Error
		if err != nil {
			return fmt.Errorf("count active queue: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := s.db.WithContext(gctx).Model(&model.Patient{}).Count(&out.TotalPatients).Error; err != nil {
			return fmt.Errorf("count patients: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var amounts []decimal.Decimal
		err := s.db.WithContext(gctx).Model(&model.Commission{}).
			Where("user_id = ? AND period_month = ? AND period_year = ?", userID, int(now.Month()), now.Year()).
			Pluck("commission_amount", &amounts).Error
		if err != nil {
			return fmt.Errorf("sum monthly commission: %w", err)
		}
		total := decimal.Zero
		for _, a := range amounts {
			total = total.Add(a)
		}
		out.MonthlyCommission = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
