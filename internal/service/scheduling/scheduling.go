package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/model"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	Title             string
	Description       *string
	ScheduleType      model.ScheduleType
	StartDatetime     time.Time
	EndDatetime       time.Time
	Location          *string
	IsRecurring       *bool
	RecurrencePattern *string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, userID uuid.UUID, scheduleType *model.ScheduleType) ([]model.Schedule, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*model.Schedule, error)
	Activities(ctx context.Context, userID uuid.UUID) ([]model.Schedule, error)
	Meetings(ctx context.Context, userID uuid.UUID) ([]model.Schedule, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type schedulingService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &schedulingService{db: db}
}

func (s *schedulingService) List(ctx context.Context, userID uuid.UUID, scheduleType *model.ScheduleType) ([]model.Schedule, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if scheduleType != nil {
		if !scheduleType.Valid() {
			return nil, ErrInvalidType
		}
		q = q.Where("schedule_type = ?", *scheduleType)
	}

	schedules := []model.Schedule{}
	if err := q.Order("start_datetime ASC").Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

func (s *schedulingService) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*model.Schedule, error) {
	if !req.ScheduleType.Valid() {
		return nil, ErrInvalidType
	}
	if !req.EndDatetime.After(req.StartDatetime) {
		return nil, ErrInvalidTimeRange
	}

	sc := model.Schedule{
		UserID:            userID,
		Title:             req.Title,
		Description:       req.Description,
		ScheduleType:      req.ScheduleType,
		StartDatetime:     req.StartDatetime.UTC(),
		EndDatetime:       req.EndDatetime.UTC(),
		Location:          req.Location,
		RecurrencePattern: req.RecurrencePattern,
	}
	if req.IsRecurring != nil {
		sc.IsRecurring = *req.IsRecurring
	}

	if err := s.db.WithContext(ctx).Create(&sc).Error; err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return &sc, nil
}

func (s *schedulingService) Activities(ctx context.Context, userID uuid.UUID) ([]model.Schedule, error) {
	t := model.ScheduleActivity
	return s.List(ctx, userID, &t)
}

func (s *schedulingService) Meetings(ctx context.Context, userID uuid.UUID) ([]model.Schedule, error) {
	t := model.ScheduleMeeting
	return s.List(ctx, userID, &t)
}
