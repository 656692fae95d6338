package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/roxydental/roxydental_backend/internal/model"
)

type CreateRequest struct {
	StartDate time.Time
	EndDate   time.Time
	LeaveType model.LeaveType
	Reason    string
}

type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*model.LeaveRequest, error)
	// Decide approves or rejects a pending request.
	Decide(ctx context.Context, id, approverID uuid.UUID, status model.LeaveStatus) (*model.LeaveRequest, error)
}

type leaveService struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) Service {
	return &leaveService{db: db, now: time.Now}
}

func (s *leaveService) List(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error) {
	leaves := []model.LeaveRequest{}
	err := s.db.WithContext(ctx).
		Preload("Approver", func(db *gorm.DB) *gorm.DB { return db.Select("id", "full_name") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leaves).Error
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return leaves, nil
}

func (s *leaveService) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*model.LeaveRequest, error) {
	if !req.LeaveType.Valid() {
		return nil, ErrInvalidType
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidDateRange
	}

	lr := model.LeaveRequest{
		UserID:    userID,
		StartDate: req.StartDate.UTC(),
		EndDate:   req.EndDate.UTC(),
		LeaveType: req.LeaveType,
		Reason:    req.Reason,
		Status:    model.LeavePending,
	}
	if err := s.db.WithContext(ctx).Create(&lr).Error; err != nil {
		return nil, fmt.Errorf("create leave request: %w", err)
	}
	return &lr, nil
}

func (s *leaveService) Decide(ctx context.Context, id, approverID uuid.UUID, status model.LeaveStatus) (*model.LeaveRequest, error) {
	if status != model.LeaveApproved && status != model.LeaveRejected {
		return nil, ErrInvalidDecision
	}

	var lr model.LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&lr, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLeaveNotFound
			}
			return fmt.Errorf("get leave request: %w", err)
		}
		if lr.UserID == approverID {
			return ErrSelfDecision
		}
		if lr.Status != model.LeavePending {
			return ErrAlreadyDecided
		}

		at := s.now().UTC()
		err := tx.Model(&lr).Updates(map[string]any{
			"status":      status,
			"approved_by": approverID,
			"approved_at": at,
		}).Error
		if err != nil {
			return fmt.Errorf("decide leave request: %w", err)
		}
		lr.Status, lr.ApprovedBy, lr.ApprovedAt = status, &approverID, &at

		return tx.Preload("Approver", func(db *gorm.DB) *gorm.DB { return db.Select("id", "full_name") }).
			Take(&lr, "id = ?", lr.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &lr, nil
}
