package commission

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/testdb"
)

func seedCommission(t *testing.T, db *gorm.DB, user *model.User, visit *model.Visit, svc *model.Service, amount int64, month, year int) {
	t.Helper()
	tr := model.Treatment{
		VisitID: visit.ID, PatientID: visit.PatientID, ServiceID: svc.ID, PerformedBy: user.ID,
		Quantity: 1, UnitPrice: svc.BasePrice, Subtotal: svc.BasePrice, Images: []string{},
	}
	if err := db.Create(&tr).Error; err != nil {
		t.Fatalf("create treatment: %v", err)
	}
	c := model.Commission{
		UserID: user.ID, TreatmentID: tr.ID, BaseAmount: svc.BasePrice, CommissionRate: svc.CommissionRate,
		CommissionAmount: decimal.NewFromInt(amount), PeriodMonth: month, PeriodYear: year, Status: model.CommissionPending,
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create commission: %v", err)
	}
}

func newService(db *gorm.DB) *commissionService {
	s := New(db, time.UTC).(*commissionService)
	s.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestSummary_Empty(t *testing.T) {
	db := testdb.New(t)
	doctor := testdb.User(t, db, model.RoleDokter, "dokter1")

	got, err := newService(db).Summary(context.Background(), doctor.ID, Period{})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	b, _ := json.Marshal(got)
	if want := `{"total":0,"byCategory":{},"commissions":[]}`; string(b) != want {
		t.Errorf("Summary() json = %s, want %s", b, want)
	}
}

func TestSummary_GroupsByCategory(t *testing.T) {
	db := testdb.New(t)
	doctor := testdb.User(t, db, model.RoleDokter, "dokter1")
	other := testdb.User(t, db, model.RoleDokter, "dokter2")
	v := testdb.Visit(t, db, testdb.Patient(t, db, "P"), doctor, time.Now(), 1, model.VisitCompleted)
	consult := testdb.Service(t, db, "C1", model.CategoryConsultation, 100000, 20)
	pharmacy := testdb.Service(t, db, "F1", model.CategoryPharmacy, 50000, 10)

	seedCommission(t, db, doctor, v, consult, 20000, 10, 2026)
	seedCommission(t, db, doctor, v, consult, 15000, 10, 2026)
	seedCommission(t, db, doctor, v, pharmacy, 5000, 10, 2026)
	seedCommission(t, db, doctor, v, pharmacy, 9999, 9, 2026)
	seedCommission(t, db, other, v, consult, 7777, 10, 2026)

	s := newService(db)
	got, err := s.Summary(context.Background(), doctor.ID, Period{})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if !got.Total.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("Total = %s, want 40000", got.Total)
	}
	if !got.ByCategory[model.CategoryConsultation].Equal(decimal.NewFromInt(35000)) ||
		!got.ByCategory[model.CategoryPharmacy].Equal(decimal.NewFromInt(5000)) {
		t.Errorf("ByCategory = %v", got.ByCategory)
	}
	if len(got.Commissions) != 3 {
		t.Errorf("Commissions len = %d, want 3", len(got.Commissions))
	}

	sept, err := s.Summary(context.Background(), doctor.ID, Period{Month: 9, Year: 2026})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if !sept.Total.Equal(decimal.NewFromInt(9999)) {
		t.Errorf("September Total = %s, want 9999", sept.Total)
	}
}

func TestByCategory(t *testing.T) {
	db := testdb.New(t)
	doctor := testdb.User(t, db, model.RoleDokter, "dokter1")
	v := testdb.Visit(t, db, testdb.Patient(t, db, "Pasien Ortho"), doctor, time.Now(), 1, model.VisitCompleted)
	ortho := testdb.Service(t, db, "O1", model.CategoryOrthodontic, 3000000, 10)
	consult := testdb.Service(t, db, "C1", model.CategoryConsultation, 100000, 20)

	seedCommission(t, db, doctor, v, ortho, 300000, 10, 2026)
	seedCommission(t, db, doctor, v, ortho, 150000, 10, 2026)
	seedCommission(t, db, doctor, v, consult, 20000, 10, 2026)

	s := newService(db)
	tests := []struct {
		name      string
		category  model.ServiceCategory
		wantLen   int
		wantTotal int64
		wantErr   error
	}{
		{"orthodontic", model.CategoryOrthodontic, 2, 450000, nil},
		{"consultation", model.CategoryConsultation, 1, 20000, nil},
		{"pharmacy empty", model.CategoryPharmacy, 0, 0, nil},
		{"invalid", "LAB", 0, 0, ErrInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ByCategory(context.Background(), doctor.ID, tt.category, Period{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ByCategory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(got.Commissions) != tt.wantLen || !got.Total.Equal(decimal.NewFromInt(tt.wantTotal)) {
				t.Errorf("ByCategory() = %d rows total %s", len(got.Commissions), got.Total)
			}
			for _, c := range got.Commissions {
				if c.Treatment == nil || c.Treatment.Visit == nil || c.Treatment.Visit.Patient == nil {
					t.Fatal("ByCategory() did not preload treatment.visit.patient")
				}
				if c.Treatment.Visit.Patient.FullName != "Pasien Ortho" {
					t.Errorf("patient = %s", c.Treatment.Visit.Patient.FullName)
				}
			}
		})
	}
}

func TestSummary_InvalidPeriod(t *testing.T) {
	db := testdb.New(t)
	_, err := newService(db).Summary(context.Background(), uuid.New(), Period{Month: 13})
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("Summary() error = %v, wantErr %v", err, ErrInvalidPeriod)
	}
}
