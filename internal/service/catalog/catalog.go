// Package catalog manages the billable services treatments are recorded against.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/model"
)

type CreateRequest struct {
	ServiceCode    string
	ServiceName    string
	Category       model.ServiceCategory
	BasePrice      decimal.Decimal
	CommissionRate decimal.Decimal
	Description    *string
}

type Service interface {
	List(ctx context.Context, category *model.ServiceCategory) ([]model.Service, error)
	Create(ctx context.Context, req CreateRequest) (*model.Service, error)
}

type catalogService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &catalogService{db: db}
}

func (s *catalogService) List(ctx context.Context, category *model.ServiceCategory) ([]model.Service, error) {
	q := s.db.WithContext(ctx).Where("is_active = ?", true)
	if category != nil {
		if !category.Valid() {
			return nil, ErrInvalidCategory
		}
		q = q.Where("category = ?", *category)
	}

	services := []model.Service{}
	if err := q.Order("service_name ASC").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

var hundred = decimal.NewFromInt(100)

func (s *catalogService) Create(ctx context.Context, req CreateRequest) (*model.Service, error) {
	if !req.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if req.BasePrice.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if req.CommissionRate.IsNegative() || req.CommissionRate.GreaterThan(hundred) {
		return nil, ErrInvalidRate
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Service{}).Where("service_code = ?", req.ServiceCode).Count(&n).Error; err != nil {
		return nil, fmt.Errorf("check service code: %w", err)
	}
	if n > 0 {
		return nil, ErrCodeExists
	}

	svc := model.Service{
		ServiceCode:    req.ServiceCode,
		ServiceName:    req.ServiceName,
		Category:       req.Category,
		BasePrice:      req.BasePrice,
		CommissionRate: req.CommissionRate,
		Description:    req.Description,
		IsActive:       true,
	}
	if err := s.db.WithContext(ctx).Create(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCodeExists
		}
		return nil, fmt.Errorf("create service: %w", err)
	}
	return &svc, nil
}

// Defaults is the starter catalog written by `system seed`.
func Defaults() []CreateRequest {
	d := decimal.NewFromInt
	return []CreateRequest{
		{ServiceCode: "KON-001", ServiceName: "Konsultasi Dokter Gigi", Category: model.CategoryConsultation, BasePrice: d(100000), CommissionRate: d(20)},
		{ServiceCode: "KON-002", ServiceName: "Pemeriksaan Rutin", Category: model.CategoryConsultation, BasePrice: d(75000), CommissionRate: d(15)},
		{ServiceCode: "TRT-001", ServiceName: "Scaling", Category: model.CategoryOther, BasePrice: d(350000), CommissionRate: d(25)},
		{ServiceCode: "TRT-002", ServiceName: "Tambal Gigi", Category: model.CategoryOther, BasePrice: d(250000), CommissionRate: d(25)},
		{ServiceCode: "TRT-003", ServiceName: "Cabut Gigi", Category: model.CategoryOther, BasePrice: d(300000), CommissionRate: d(25)},
		{ServiceCode: "ORT-001", ServiceName: "Pemasangan Behel", Category: model.CategoryOrthodontic, BasePrice: d(5000000), CommissionRate: d(10)},
		{ServiceCode: "ORT-002", ServiceName: "Kontrol Behel", Category: model.CategoryOrthodontic, BasePrice: d(300000), CommissionRate: d(15)},
		{ServiceCode: "FRM-001", ServiceName: "Obat Pereda Nyeri", Category: model.CategoryPharmacy, BasePrice: d(35000), CommissionRate: d(5)},
		{ServiceCode: "FRM-002", ServiceName: "Obat Kumur Antiseptik", Category: model.CategoryPharmacy, BasePrice: d(45000), CommissionRate: d(5)},
	}
}

// Seed creates any default services whose code is not yet present.
func Seed(ctx context.Context, svc Service) (created int, err error) {
	for _, req := range Defaults() {
		if _, err := svc.Create(ctx, req); err != nil {
			if errors.Is(err, ErrCodeExists) {
				continue
			}
			return created, fmt.Errorf("seed %s: %w", req.ServiceCode, err)
		}
		created++
	}
	return created, nil
}
