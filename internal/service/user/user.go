package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/pkg/util/password"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	Username       string
	Email          string
	Password       string
	FullName       string
	Role           model.Role
	Phone          string
	Specialization *string
}

type UpdateRequest struct {
	FullName       *string
	Phone          *string
	Specialization *string
	IsActive       *bool
}

type ProfileUpdate struct {
	FullName       *string
	Phone          *string
	Specialization *string
	Education      *string
	Experience     *string
}

type StatusResult struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	IsActive bool      `json:"isActive"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, role *model.Role) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, req CreateRequest) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleStatus(ctx context.Context, id uuid.UUID) (*StatusResult, error)

	Profile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req ProfileUpdate) (*model.User, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type userService struct {
	db     *gorm.DB
	hasher *password.Hasher
}

func New(db *gorm.DB, hasher *password.Hasher) Service {
	return &userService{db: db, hasher: hasher}
}

func (s *userService) List(ctx context.Context, role *model.Role) ([]model.User, error) {
	q := s.db.WithContext(ctx)
	if role != nil {
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		q = q.Where("role = ?", *role)
	}

	users := []model.User{}
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var c model.UserCounts
	counts := []struct {
		model any
		col   string
		dst   *int64
	}{
		{&model.Visit{}, "nurse_id", &c.VisitsAsNurse},
		{&model.Treatment{}, "performed_by", &c.TreatmentsPerformed},
		{&model.Schedule{}, "user_id", &c.Schedules},
		{&model.LeaveRequest{}, "user_id", &c.LeaveRequests},
		{&model.Commission{}, "user_id", &c.Commissions},
	}
	for _, k := range counts {
		if err := db.Model(k.model).Where(k.col+" = ?", id).Count(k.dst).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", k.col, err)
		}
	}
	u.Counts = &c
	return u, nil
}

func (s *userService) Create(ctx context.Context, req CreateRequest) (*model.User, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	var exists int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&exists).Error
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if exists > 0 {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := model.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           req.Role,
		FullName:       req.FullName,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		IsActive:       true,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*model.User, error) {
	updates := map[string]any{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Specialization != nil {
		updates["specialization"] = *req.Specialization
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	return s.apply(ctx, id, updates)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return ErrHasRelatedData
		}
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *userService) ToggleStatus(ctx context.Context, id uuid.UUID) (*StatusResult, error) {
	var u model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("get user: %w", err)
		}
		// NOT is_active flips atomically.
		if err := tx.Model(&u).Update("is_active", gorm.Expr("NOT is_active")).Error; err != nil {
			return fmt.Errorf("toggle user status: %w", err)
		}
		return tx.Select("id", "username", "full_name", "is_active").Take(&u, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &StatusResult{ID: u.ID, Username: u.Username, FullName: u.FullName, IsActive: u.IsActive}, nil
}

func (s *userService) Profile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.find(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req ProfileUpdate) (*model.User, error) {
	updates := map[string]any{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Specialization != nil {
		updates["specialization"] = *req.Specialization
	}
	if req.Education != nil {
		updates["education"] = *req.Education
	}
	if req.Experience != nil {
		updates["experience"] = *req.Experience
	}
	return s.apply(ctx, id, updates)
}

func (s *userService) apply(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.User, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return u, nil
	}
	if err := s.db.WithContext(ctx).Model(u).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.find(ctx, id)
}

func (s *userService) find(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Take(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
