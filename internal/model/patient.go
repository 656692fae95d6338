package model

import "time"

type Patient struct {
	Base
	PatientNumber  string    `gorm:"size:32;uniqueIndex;not null" json:"patientNumber"`
	FullName       string    `gorm:"size:255;index;not null" json:"fullName"`
	DateOfBirth    time.Time `json:"dateOfBirth"`
	Gender         Gender    `gorm:"size:1;not null" json:"gender"`
	Phone          string    `gorm:"size:32;index" json:"phone"`
	Email          *string   `json:"email"`
	Address        *string   `json:"address,omitempty"`
	BloodType      *string   `gorm:"size:4" json:"bloodType,omitempty"`
	Allergies      *string   `json:"allergies,omitempty"`
	MedicalHistory *string   `json:"medicalHistory,omitempty"`

	Visits []Visit        `gorm:"foreignKey:PatientID" json:"visits,omitempty"`
	Counts *PatientCounts `gorm:"-" json:"_count,omitempty"`
}

type PatientCounts struct {
	Visits     int64  `json:"visits"`
	Treatments *int64 `json:"treatments,omitempty"`
}
