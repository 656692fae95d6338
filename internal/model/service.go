package model

import "github.com/shopspring/decimal"

// Service is a catalog entry billed through treatments.
type Service struct {
	Base
	ServiceCode    string          `gorm:"size:32;uniqueIndex;not null" json:"serviceCode"`
	ServiceName    string          `gorm:"size:255;not null" json:"serviceName"`
	Category       ServiceCategory `gorm:"size:16;index;not null" json:"category"`
	BasePrice      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"basePrice"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"commissionRate"`
	Description    *string         `json:"description"`
	IsActive       bool            `gorm:"not null;default:true" json:"isActive"`
}
