package model

import (
	"time"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	Base
	UserID     uuid.UUID   `gorm:"type:uuid;index;not null" json:"userId"`
	StartDate  time.Time   `gorm:"not null" json:"startDate"`
	EndDate    time.Time   `gorm:"not null" json:"endDate"`
	LeaveType  LeaveType   `gorm:"size:16;not null" json:"leaveType"`
	Reason     string      `gorm:"not null" json:"reason"`
	Status     LeaveStatus `gorm:"size:16;index;not null;default:PENDING" json:"status"`
	ApprovedBy *uuid.UUID  `gorm:"type:uuid" json:"approvedBy"`
	ApprovedAt *time.Time  `json:"approvedAt"`

	User     *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Approver *User `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}
