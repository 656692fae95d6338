package model

import (
	"time"

	"github.com/google/uuid"
)

type Schedule struct {
	Base
	UserID            uuid.UUID    `gorm:"type:uuid;index;not null" json:"userId"`
	Title             string       `gorm:"size:255;not null" json:"title"`
	Description       *string      `json:"description"`
	ScheduleType      ScheduleType `gorm:"size:16;index;not null" json:"scheduleType"`
	StartDatetime     time.Time    `gorm:"index;not null" json:"startDatetime"`
	EndDatetime       time.Time    `gorm:"not null" json:"endDatetime"`
	Location          *string      `json:"location"`
	IsRecurring       bool         `gorm:"not null;default:false" json:"isRecurring"`
	RecurrencePattern *string      `json:"recurrencePattern"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
