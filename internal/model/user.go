package model

import "time"

type User struct {
	Base
	Username       string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"not null" json:"-"`
	Role           Role       `gorm:"size:16;index;not null" json:"role"`
	FullName       string     `gorm:"size:255;not null" json:"fullName"`
	Phone          string     `gorm:"size:32" json:"phone"`
	Specialization *string    `json:"specialization"`
	Education      *string    `json:"education,omitempty"`
	Experience     *string    `json:"experience,omitempty"`
	SIPNumber      *string    `gorm:"column:sip_number" json:"sipNumber,omitempty"`
	SIPStartDate   *time.Time `gorm:"column:sip_start_date" json:"sipStartDate,omitempty"`
	SIPEndDate     *time.Time `gorm:"column:sip_end_date" json:"sipEndDate,omitempty"`
	ProfilePhoto   *string    `json:"profilePhoto,omitempty"`
	IsActive       bool       `gorm:"not null;default:true" json:"isActive"`

	Counts *UserCounts `gorm:"-" json:"_count,omitempty"`
}

// UserCounts summarizes the rows owned by a staff member.
type UserCounts struct {
	VisitsAsNurse       int64 `json:"visitsAsNurse"`
	TreatmentsPerformed int64 `json:"treatmentsPerformed"`
	Schedules           int64 `json:"schedules"`
	LeaveRequests       int64 `json:"leaveRequests"`
	Commissions         int64 `json:"commissions"`
}
