// Package nurseprofile serves the caller's own staff profile: completion,
// duty status, SIP license window and the current week's shifts.
package nurseprofile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/pkg/s3"
)

const (
	StatusOnDuty  = "On Duty"
	StatusOffDuty = "Off Duty"

	LicenseInactive     = "INACTIVE"
	LicenseActive       = "ACTIVE"
	LicenseExpiringSoon = "EXPIRING_SOON"
	LicenseExpired      = "EXPIRED"

	expiringWindowDays = 90
)

var weekdays = [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type UpdateRequest struct {
	FullName       *string
	Email          *string
	Phone          *string
	Specialization *string
	Education      *string
	Experience     *string
	SIPNumber      *string
	SIPStartDate   *time.Time
	SIPEndDate     *time.Time
}

type Completion struct {
	Percentage    int `json:"percentage"`
	FilledFields  int `json:"filledFields"`
	TotalFields   int `json:"totalFields"`
	MissingFields int `json:"missingFields"`
}

type ShiftInfo struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Location  *string `json:"location"`
}

type RemainingTime struct {
	Hours     int    `json:"hours"`
	Minutes   int    `json:"minutes"`
	Formatted string `json:"formatted"`
}

type ShiftStatus struct {
	Status        string         `json:"status"`
	Shift         *ShiftInfo     `json:"shift"`
	RemainingTime *RemainingTime `json:"remainingTime"`
}

type AccountStatus struct {
	IsActive             bool   `json:"isActive"`
	IsVerified           bool   `json:"isVerified"`
	CompletionPercentage int    `json:"completionPercentage"`
	ShiftStatus          string `json:"shiftStatus"`
}

type LicenseRemaining struct {
	Percentage int    `json:"percentage"`
	Years      int    `json:"years"`
	Months     int    `json:"months"`
	Days       int    `json:"days"`
	Formatted  string `json:"formatted"`
}

type LicenseInfo struct {
	HasLicense bool              `json:"hasLicense"`
	SIPNumber  *string           `json:"sipNumber"`
	StartDate  *time.Time        `json:"startDate"`
	EndDate    *time.Time        `json:"endDate"`
	Status     string            `json:"status"`
	Remaining  *LicenseRemaining `json:"remaining"`
}

type DaySchedule struct {
	Day      string `json:"day"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location"`
}

type Photo struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Profile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateRequest) (*model.User, error)
	UploadPhoto(ctx context.Context, userID uuid.UUID, photo Photo) (*model.User, error)
	Completion(ctx context.Context, userID uuid.UUID) (*Completion, error)
	ShiftStatus(ctx context.Context, userID uuid.UUID) (*ShiftStatus, error)
	AccountStatus(ctx context.Context, userID uuid.UUID) (*AccountStatus, error)
	LicenseInfo(ctx context.Context, userID uuid.UUID) (*LicenseInfo, error)
	WeeklySchedule(ctx context.Context, userID uuid.UUID) ([]DaySchedule, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type profileService struct {
	db    *gorm.DB
	store s3.ObjectStore
	loc   *time.Location
	now   func() time.Time
}

// New builds the service. store may be nil when object storage is not configured.
func New(db *gorm.DB, store s3.ObjectStore, loc *time.Location) Service {
	if loc == nil {
		loc = time.Local
	}
	return &profileService{db: db, store: store, loc: loc, now: time.Now}
}

func (s *profileService) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Take(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &u, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateRequest) (*model.User, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != u.Email {
		var taken int64
		if err := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", *req.Email).Count(&taken).Error; err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken > 0 {
			return nil, ErrEmailTaken
		}
	}

	updates := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	set("full_name", req.FullName)
	set("email", req.Email)
	set("phone", req.Phone)
	set("specialization", req.Specialization)
	set("education", req.Education)
	set("experience", req.Experience)
	set("sip_number", req.SIPNumber)
	if req.SIPStartDate != nil {
		updates["sip_start_date"] = req.SIPStartDate.UTC()
	}
	if req.SIPEndDate != nil {
		updates["sip_end_date"] = req.SIPEndDate.UTC()
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(u).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrEmailTaken
			}
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}
	return s.Profile(ctx, userID)
}

func (s *profileService) UploadPhoto(ctx context.Context, userID uuid.UUID, photo Photo) (*model.User, error) {
	if s.store == nil {
		return nil, ErrPhotoUnavailable
	}
	switch photo.ContentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return nil, ErrInvalidPhoto
	}

	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := s3.ProfilePhotoKey(userID, photo.Filename)
	if err := s.store.Upload(ctx, key, photo.ContentType, photo.Body, photo.Size); err != nil {
		return nil, err
	}
	url, err := s.store.URL(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(u).Update("profile_photo", url).Error; err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, fmt.Errorf("save profile photo: %w", err)
	}
	u.ProfilePhoto = &url
	return u, nil
}

func (s *profileService) Completion(ctx context.Context, userID uuid.UUID) (*Completion, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return completionOf(u), nil
}

func completionOf(u *model.User) *Completion {
	str := func(v string) bool { return v != "" }
	ptr := func(v *string) bool { return v != nil && *v != "" }
	fields := []bool{
		str(u.FullName),
		str(u.Email),
		str(u.Phone),
		ptr(u.Specialization),
		ptr(u.Education),
		ptr(u.Experience),
		ptr(u.SIPNumber),
		u.SIPStartDate != nil,
		u.SIPEndDate != nil,
		ptr(u.ProfilePhoto),
	}

	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}
	total := len(fields)
	return &Completion{
		Percentage:    int(math.Round(float64(filled) / float64(total) * 100)),
		FilledFields:  filled,
		TotalFields:   total,
		MissingFields: total - filled,
	}
}

func (s *profileService) ShiftStatus(ctx context.Context, userID uuid.UUID) (*ShiftStatus, error) {
	now := s.now()

	var shift model.Schedule
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND schedule_type = ?", userID, model.ScheduleShift).
		Where("start_datetime <= ? AND end_datetime >= ?", now.UTC(), now.UTC()).
		Order("start_datetime ASC").
		Take(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ShiftStatus{Status: StatusOffDuty}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get current shift: %w", err)
	}

	left := shift.EndDatetime.Sub(now)
	hours := int(left / time.Hour)
	minutes := int((left % time.Hour) / time.Minute)
	return &ShiftStatus{
		Status: StatusOnDuty,
		Shift: &ShiftInfo{
			StartTime: shift.StartDatetime.In(s.loc).Format("15:04"),
			EndTime:   shift.EndDatetime.In(s.loc).Format("15:04"),
			Location:  shift.Location,
		},
		RemainingTime: &RemainingTime{
			Hours:     hours,
			Minutes:   minutes,
			Formatted: fmt.Sprintf("%d jam %d menit", hours, minutes),
		},
	}, nil
}

func (s *profileService) AccountStatus(ctx context.Context, userID uuid.UUID) (*AccountStatus, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	shift, err := s.ShiftStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &AccountStatus{
		IsActive:             u.IsActive,
		IsVerified:           hasLicense(u),
		CompletionPercentage: completionOf(u).Percentage,
		ShiftStatus:          shift.Status,
	}, nil
}

func hasLicense(u *model.User) bool {
	return u.SIPNumber != nil && *u.SIPNumber != "" && u.SIPStartDate != nil && u.SIPEndDate != nil
}

func (s *profileService) LicenseInfo(ctx context.Context, userID uuid.UUID) (*LicenseInfo, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !hasLicense(u) {
		return &LicenseInfo{Status: LicenseInactive}, nil
	}

	start, end := *u.SIPStartDate, *u.SIPEndDate
	totalDays := floorDays(end.Sub(start))
	remainingDays := floorDays(end.Sub(s.now()))

	status := LicenseActive
	switch {
	case remainingDays < 0:
		status = LicenseExpired
	case remainingDays <= expiringWindowDays:
		status = LicenseExpiringSoon
	}

	pct := 0.0
	if totalDays > 0 {
		pct = math.Max(0, math.Min(100, float64(remainingDays)/float64(totalDays)*100))
	}
	years, months := 0, 0
	if remainingDays > 0 {
		years = remainingDays / 365
		months = (remainingDays % 365) / 30
	}

	return &LicenseInfo{
		HasLicense: true,
		SIPNumber:  u.SIPNumber,
		StartDate:  u.SIPStartDate,
		EndDate:    u.SIPEndDate,
		Status:     status,
		Remaining: &LicenseRemaining{
			Percentage: int(math.Round(pct)),
			Years:      years,
			Months:     months,
			Days:       remainingDays,
			Formatted:  fmt.Sprintf("%d tahun %d bulan", years, months),
		},
	}, nil
}

func floorDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}

// WeeklySchedule lists this week's shifts, Sunday first, one row per weekday.
func (s *profileService) WeeklySchedule(ctx context.Context, userID uuid.UUID) ([]DaySchedule, error) {
	now := s.now().In(s.loc)
	weekStart := time.Date(now.Year(), now.Month(), now.Day()-int(now.Weekday()), 0, 0, 0, 0, s.loc)
	weekEnd := weekStart.AddDate(0, 0, 7)

	var shifts []model.Schedule
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND schedule_type = ?", userID, model.ScheduleShift).
		Where("start_datetime >= ? AND start_datetime < ?", weekStart.UTC(), weekEnd.UTC()).
		Order("start_datetime ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, fmt.Errorf("list weekly shifts: %w", err)
	}

	week := make([]DaySchedule, len(weekdays))
	for i, day := range weekdays {
		week[i] = DaySchedule{Day: day, Start: "-", End: "-", Location: "-"}
	}
	// A later shift on the same day replaces an earlier one.
	for _, sh := range shifts {
		start := sh.StartDatetime.In(s.loc)
		loc := "-"
		if sh.Location != nil && *sh.Location != "" {
			loc = *sh.Location
		}
		week[start.Weekday()] = DaySchedule{
			Day:      weekdays[start.Weekday()],
			Start:    start.Format("15:04"),
			End:      sh.EndDatetime.In(s.loc).Format("15:04"),
			Location: loc,
		}
	}
	return week, nil
}
