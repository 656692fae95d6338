package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Visit struct {
	Base
	VisitNumber    string          `gorm:"size:32;uniqueIndex;not null" json:"visitNumber"`
	PatientID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"patientId"`
	NurseID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"nurseId"`
	VisitDate      time.Time       `gorm:"index;not null" json:"visitDate"`
	QueueNumber    int             `gorm:"not null" json:"queueNumber"`
	Status         VisitStatus     `gorm:"size:16;index;not null;default:WAITING" json:"status"`
	ChiefComplaint *string         `json:"chiefComplaint"`
	BloodPressure  *string         `gorm:"size:16" json:"bloodPressure"`
	Notes          *string         `json:"notes"`
	TotalCost      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"totalCost"`

	Patient    *Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Nurse      *User       `gorm:"foreignKey:NurseID" json:"nurse,omitempty"`
	Treatments []Treatment `gorm:"foreignKey:VisitID" json:"treatments,omitempty"`
	Payments   []Payment   `gorm:"foreignKey:VisitID" json:"payments,omitempty"`
}
