package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	Base
	VisitID         uuid.UUID       `gorm:"type:uuid;index;not null" json:"visitId"`
	PaymentNumber   string          `gorm:"size:32;uniqueIndex;not null" json:"paymentNumber"`
	PaymentMethod   PaymentMethod   `gorm:"size:16;not null" json:"paymentMethod"`
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"paidAmount"`
	ChangeAmount    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"changeAmount"`
	Status          PaymentStatus   `gorm:"size:16;index;not null" json:"status"`
	ReferenceNumber *string         `gorm:"size:64" json:"referenceNumber"`
	Notes           *string         `json:"notes"`
	SnapToken       *string         `gorm:"size:64" json:"snapToken,omitempty"`
	RedirectURL     *string         `json:"redirectUrl,omitempty"`
	PaymentDate     time.Time       `gorm:"index;not null" json:"paymentDate"`
	ReceivedBy      uuid.UUID       `gorm:"type:uuid;not null" json:"receivedBy"`

	Visit    *Visit `gorm:"foreignKey:VisitID" json:"visit,omitempty"`
	Receiver *User  `gorm:"foreignKey:ReceivedBy" json:"receiver,omitempty"`
}
