package model

type Role string

const (
	RoleDokter  Role = "DOKTER"
	RolePerawat Role = "PERAWAT"
)

func (r Role) Valid() bool { return r == RoleDokter || r == RolePerawat }

type Gender string

const (
	GenderMale   Gender = "L"
	GenderFemale Gender = "P"
)

func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale }

type VisitStatus string

const (
	VisitWaiting    VisitStatus = "WAITING"
	VisitInProgress VisitStatus = "IN_PROGRESS"
	VisitCompleted  VisitStatus = "COMPLETED"
	VisitCancelled  VisitStatus = "CANCELLED"
)

func (s VisitStatus) Valid() bool {
	switch s {
	case VisitWaiting, VisitInProgress, VisitCompleted, VisitCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a visit may move from s to next.
func (s VisitStatus) CanTransition(next VisitStatus) bool {
	switch s {
	case VisitWaiting:
		return next == VisitInProgress || next == VisitCancelled
	case VisitInProgress:
		return next == VisitCompleted || next == VisitCancelled
	}
	return false
}

// ActiveVisitStatuses are the statuses shown on the queue board.
var ActiveVisitStatuses = []VisitStatus{VisitWaiting, VisitInProgress}

type ServiceCategory string

const (
	CategoryConsultation ServiceCategory = "CONSULTATION"
	CategoryPharmacy     ServiceCategory = "PHARMACY"
	CategoryOrthodontic  ServiceCategory = "ORTHODONTIC"
	CategoryOther        ServiceCategory = "OTHER"
)

func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryConsultation, CategoryPharmacy, CategoryOrthodontic, CategoryOther:
		return true
	}
	return false
}

type CommissionStatus string

const (
	CommissionPending CommissionStatus = "PENDING"
	CommissionPaid    CommissionStatus = "PAID"
)

type ScheduleType string

const (
	ScheduleShift    ScheduleType = "SHIFT"
	ScheduleActivity ScheduleType = "ACTIVITY"
	ScheduleMeeting  ScheduleType = "MEETING"
)

func (t ScheduleType) Valid() bool {
	return t == ScheduleShift || t == ScheduleActivity || t == ScheduleMeeting
}

type LeaveType string

const (
	LeaveAnnual    LeaveType = "ANNUAL"
	LeaveSick      LeaveType = "SICK"
	LeaveEmergency LeaveType = "EMERGENCY"
	LeaveOther     LeaveType = "OTHER"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeaveEmergency, LeaveOther:
		return true
	}
	return false
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentDebit    PaymentMethod = "DEBIT"
	PaymentCredit   PaymentMethod = "CREDIT"
	PaymentQRIS     PaymentMethod = "QRIS"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentDebit, PaymentCredit, PaymentQRIS:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)
