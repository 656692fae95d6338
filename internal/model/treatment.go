package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Treatment struct {
	Base
	VisitID        uuid.UUID                   `gorm:"type:uuid;index;not null" json:"visitId"`
	PatientID      uuid.UUID                   `gorm:"type:uuid;index;not null" json:"patientId"`
	ServiceID      uuid.UUID                   `gorm:"type:uuid;index;not null" json:"serviceId"`
	PerformedBy    uuid.UUID                   `gorm:"type:uuid;index;not null" json:"performedBy"`
	ToothNumber    *string                     `gorm:"size:16" json:"toothNumber"`
	Diagnosis      *string                     `json:"diagnosis"`
	TreatmentNotes *string                     `json:"treatmentNotes"`
	Quantity       int                         `gorm:"not null;default:1" json:"quantity"`
	UnitPrice      decimal.Decimal             `gorm:"type:decimal(14,2);not null" json:"unitPrice"`
	Discount       decimal.Decimal             `gorm:"type:decimal(14,2);not null;default:0" json:"discount"`
	Subtotal       decimal.Decimal             `gorm:"type:decimal(14,2);not null" json:"subtotal"`
	Images         datatypes.JSONSlice[string] `json:"images"`

	Visit     *Visit   `gorm:"foreignKey:VisitID" json:"visit,omitempty"`
	Patient   *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Service   *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Performer *User    `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}
