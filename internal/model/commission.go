package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Commission is written once alongside its treatment and never re-derived.
type Commission struct {
	Base
	UserID           uuid.UUID        `gorm:"type:uuid;index:idx_commission_period,priority:1;not null" json:"userId"`
	TreatmentID      uuid.UUID        `gorm:"type:uuid;uniqueIndex;not null" json:"treatmentId"`
	BaseAmount       decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"baseAmount"`
	CommissionRate   decimal.Decimal  `gorm:"type:decimal(5,2);not null" json:"commissionRate"`
	CommissionAmount decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"commissionAmount"`
	PeriodMonth      int              `gorm:"index:idx_commission_period,priority:3;not null" json:"periodMonth"`
	PeriodYear       int              `gorm:"index:idx_commission_period,priority:2;not null" json:"periodYear"`
	Status           CommissionStatus `gorm:"size:16;not null;default:PENDING" json:"status"`

	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Treatment *Treatment `gorm:"foreignKey:TreatmentID" json:"treatment,omitempty"`
}
