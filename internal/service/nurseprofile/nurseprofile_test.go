package nurseprofile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/testdb"
)

var wib = time.FixedZone("WIB", 7*60*60)

// Thursday 15 October 2026, 10:00 WIB.
var fixedNow = time.Date(2026, 10, 15, 10, 0, 0, 0, wib)

type memStore struct {
	objects map[string][]byte
}

func (m *memStore) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = b
	return nil
}

func (m *memStore) URL(_ context.Context, key string) (string, error) {
	return "https://cdn.roxydental.id/" + key, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func newService(t *testing.T) (*profileService, *gorm.DB, *memStore) {
	t.Helper()
	db := testdb.New(t)
	store := &memStore{objects: map[string][]byte{}}
	s := New(db, store, wib).(*profileService)
	s.now = func() time.Time { return fixedNow }
	return s, db, store
}

func ptr[T any](v T) *T { return &v }

func TestCompletion(t *testing.T) {
	s, db, _ := newService(t)
	ctx := context.Background()
	nurse := testdb.User(t, db, model.RolePerawat, "perawat1")

	got, err := s.Completion(ctx, nurse.ID)
	if err != nil {
		t.Fatalf("Completion() error = %v", err)
	}
	// fullName, email and phone come from the fixture.
	if got.FilledFields != 3 || got.MissingFields != 7 || got.Percentage != 30 || got.TotalFields != 10 {
		t.Errorf("Completion() = %+v", got)
	}

	start, end := fixedNow.AddDate(-1, 0, 0), fixedNow.AddDate(4, 0, 0)
	err = db.Model(nurse).Updates(map[string]any{
		"specialization": "Perawat Gigi",
		"education":      "D3 Keperawatan Gigi",
		"experience":     "5 tahun",
		"sip_number":     "SIP-123/2025",
		"sip_start_date": start.UTC(),
		"sip_end_date":   end.UTC(),
		"profile_photo":  "https://cdn.roxydental.id/p.jpg",
	}).Error
	if err != nil {
		t.Fatalf("update user: %v", err)
	}

	got, err = s.Completion(ctx, nurse.ID)
	if err != nil {
		t.Fatalf("Completion() error = %v", err)
	}
	want := Completion{Percentage: 100, FilledFields: 10, TotalFields: 10, MissingFields: 0}
	if *got != want {
		t.Errorf("Completion() = %+v, want %+v", got, want)
	}

	if _, err := s.Completion(ctx, uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Completion() error = %v, wantErr %v", err, ErrUserNotFound)
	}
}

func TestUpdateProfile(t *testing.T) {
	s, db, _ := newService(t)
	ctx := context.Background()
	nurse := testdb.User(t, db, model.RolePerawat, "perawat1")
	testdb.User(t, db, model.RolePerawat, "perawat2")

	if _, err := s.UpdateProfile(ctx, nurse.ID, UpdateRequest{Email: ptr("perawat2@roxydental.id")}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("UpdateProfile() error = %v, wantErr %v", err, ErrEmailTaken)
	}

	// Re-submitting the caller's own email is not a conflict.
	got, err := s.UpdateProfile(ctx, nurse.ID, UpdateRequest{
		Email:        ptr(nurse.Email),
		Education:    ptr("S1 Keperawatan"),
		SIPStartDate: ptr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if got.Education == nil || *got.Education != "S1 Keperawatan" || got.SIPStartDate == nil {
		t.Errorf("UpdateProfile() = %+v", got)
	}
}

func TestShiftStatus(t *testing.T) {
	s, db, _ := newService(t)
	ctx := context.Background()
	nurse := testdb.User(t, db, model.RolePerawat, "perawat1")

	off, err := s.ShiftStatus(ctx, nurse.ID)
	if err != nil {
		t.Fatalf("ShiftStatus() error = %v", err)
	}
	b, _ := json.Marshal(off)
	if want := `{"status":"Off Duty","shift":null,"remainingTime":null}`; string(b) != want {
		t.Errorf("ShiftStatus() = %s, want %s", b, want)
	}

	shift := model.Schedule{
		UserID: nurse.ID, Title: "Shift Pagi", ScheduleType: model.ScheduleShift,
		StartDatetime: time.Date(2026, 10, 15, 8, 0, 0, 0, wib).UTC(),
		EndDatetime:   time.Date(2026, 10, 15, 12, 30, 0, 0, wib).UTC(),
		Location:      ptr("Ruang 2"),
	}
	if err := db.Create(&shift).Error; err != nil {
		t.Fatalf("create shift: %v", err)
	}

	on, err := s.ShiftStatus(ctx, nurse.ID)
	if err != nil {
		t.Fatalf("ShiftStatus() error = %v", err)
	}
	if on.Status != StatusOnDuty || on.Shift == nil || on.RemainingTime == nil {
		t.Fatalf("ShiftStatus() = %+v", on)
	}
	if on.Shift.StartTime != "08:00" || on.Shift.EndTime != "12:30" || *on.Shift.Location != "Ruang 2" {
		t.Errorf("Shift = %+v", on.Shift)
	}
	if on.RemainingTime.Formatted != "2 jam 30 menit" {
		t.Errorf("RemainingTime = %+v", on.RemainingTime)
	}

	acct, err := s.AccountStatus(ctx, nurse.ID)
	if err != nil {
		t.Fatalf("AccountStatus() error = %v", err)
	}
	want := AccountStatus{IsActive: true, IsVerified: false, CompletionPercentage: 30, ShiftStatus: StatusOnDuty}
	if *acct != want {
		t.Errorf("AccountStatus() = %+v, want %+v", acct, want)
	}
}

func TestLicenseInfo(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		wantStatus string
		wantDays   int
		wantYears  int
		wantMonths int
		wantPct    int
	}{
		{
			name:       "active",
			start:      fixedNow.AddDate(0, 0, -365),
			end:        fixedNow.AddDate(0, 0, 400),
			wantStatus: LicenseActive, wantDays: 400, wantYears: 1, wantMonths: 1, wantPct: 52,
		},
		{
			name:       "expiring soon",
			start:      fixedNow.AddDate(0, 0, -910),
			end:        fixedNow.AddDate(0, 0, 90),
			wantStatus: LicenseExpiringSoon, wantDays: 90, wantYears: 0, wantMonths: 3, wantPct: 9,
		},
		{
			name:       "expired",
			start:      fixedNow.AddDate(0, 0, -1000),
			end:        fixedNow.AddDate(0, 0, -5),
			wantStatus: LicenseExpired, wantDays: -5, wantYears: 0, wantMonths: 0, wantPct: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, db, _ := newService(t)
			nurse := testdb.User(t, db, model.RolePerawat, "perawat1")
			err := db.Model(nurse).Updates(map[string]any{
				"sip_number":     "SIP-1",
				"sip_start_date": tt.start.UTC(),
				"sip_end_date":   tt.end.UTC(),
			}).Error
			if err != nil {
				t.Fatalf("update user: %v", err)
			}

			got, err := s.LicenseInfo(context.Background(), nurse.ID)
			if err != nil {
				t.Fatalf("LicenseInfo() error = %v", err)
			}
			if !got.HasLicense || got.Status != tt.wantStatus || got.Remaining == nil {
				t.Fatalf("LicenseInfo() = %+v", got)
			}
			r := got.Remaining
			if r.Days != tt.wantDays || r.Years != tt.wantYears || r.Months != tt.wantMonths || r.Percentage != tt.wantPct {
				t.Errorf("Remaining = %+v", r)
			}
		})
	}

	t.Run("no license", func(t *testing.T) {
		s, db, _ := newService(t)
		nurse := testdb.User(t, db, model.RolePerawat, "perawat1")
		got, err := s.LicenseInfo(context.Background(), nurse.ID)
		if err != nil {
			t.Fatalf("LicenseInfo() error = %v", err)
		}
		b, _ := json.Marshal(got)
		want := `{"hasLicense":false,"sipNumber":null,"startDate":null,"endDate":null,"status":"INACTIVE","remaining":null}`
		if string(b) != want {
			t.Errorf("LicenseInfo() = %s, want %s", b, want)
		}
	})
}

func TestWeeklySchedule(t *testing.T) {
	s, db, _ := newService(t)
	nurse := testdb.User(t, db, model.RolePerawat, "perawat1")

	mk := func(typ model.ScheduleType, start time.Time, hours int, location *string) {
		t.Helper()
		sc := model.Schedule{
			UserID: nurse.ID, Title: "x", ScheduleType: typ,
			StartDatetime: start.UTC(), EndDatetime: start.Add(time.Duration(hours) * time.Hour).UTC(),
			Location: location,
		}
		if err := db.Create(&sc).Error; err != nil {
			t.Fatalf("create schedule: %v", err)
		}
	}
	// The week of fixedNow runs Sunday 11 October to Saturday 17 October.
	mk(model.ScheduleShift, time.Date(2026, 10, 12, 7, 0, 0, 0, wib), 8, ptr("Poli Gigi"))
	mk(model.ScheduleShift, time.Date(2026, 10, 17, 13, 0, 0, 0, wib), 6, nil)
	mk(model.ScheduleMeeting, time.Date(2026, 10, 14, 9, 0, 0, 0, wib), 1, ptr("Aula"))
	mk(model.ScheduleShift, time.Date(2026, 10, 10, 7, 0, 0, 0, wib), 8, ptr("Minggu lalu"))
	mk(model.ScheduleShift, time.Date(2026, 10, 18, 7, 0, 0, 0, wib), 8, ptr("Minggu depan"))

	got, err := s.WeeklySchedule(context.Background(), nurse.ID)
	if err != nil {
		t.Fatalf("WeeklySchedule() error = %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("WeeklySchedule() len = %d, want 7", len(got))
	}

	want := []DaySchedule{
		{"Minggu", "-", "-", "-"},
		{"Senin", "07:00", "15:00", "Poli Gigi"},
		{"Selasa", "-", "-", "-"},
		{"Rabu", "-", "-", "-"},
		{"Kamis", "-", "-", "-"},
		{"Jumat", "-", "-", "-"},
		{"Sabtu", "13:00", "19:00", "-"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestUploadPhoto(t *testing.T) {
	s, db, store := newService(t)
	ctx := context.Background()
	nurse := testdb.User(t, db, model.RolePerawat, "perawat1")

	if _, err := s.UploadPhoto(ctx, nurse.ID, Photo{Filename: "a.gif", ContentType: "image/gif", Body: strings.NewReader("x")}); !errors.Is(err, ErrInvalidPhoto) {
		t.Errorf("UploadPhoto() error = %v, wantErr %v", err, ErrInvalidPhoto)
	}

	body := []byte("\x89PNG fake")
	got, err := s.UploadPhoto(ctx, nurse.ID, Photo{Filename: "Foto.PNG", ContentType: "image/png", Size: int64(len(body)), Body: bytes.NewReader(body)})
	if err != nil {
		t.Fatalf("UploadPhoto() error = %v", err)
	}
	if got.ProfilePhoto == nil || !strings.HasPrefix(*got.ProfilePhoto, "https://cdn.roxydental.id/profiles/"+nurse.ID.String()+"/") ||
		!strings.HasSuffix(*got.ProfilePhoto, ".png") {
		t.Errorf("ProfilePhoto = %v", got.ProfilePhoto)
	}
	if len(store.objects) != 1 {
		t.Errorf("stored objects = %d, want 1", len(store.objects))
	}

	noStore := New(db, nil, wib)
	if _, err := noStore.UploadPhoto(ctx, nurse.ID, Photo{ContentType: "image/png", Body: bytes.NewReader(body)}); !errors.Is(err, ErrPhotoUnavailable) {
		t.Errorf("UploadPhoto() error = %v, wantErr %v", err, ErrPhotoUnavailable)
	}
}
