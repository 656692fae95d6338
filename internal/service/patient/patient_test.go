package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/testdb"
)

func TestCreateTreatment_SubtotalAndCommission(t *testing.T) {
	db := testdb.New(t)
	doctor := testdb.User(t, db, model.RoleDokter, "dokter1")
	nurse := testdb.User(t, db, model.RolePerawat, "perawat1")
	p := testdb.Patient(t, db, "Rina")
	v := testdb.Visit(t, db, p, nurse, time.Now(), 1, model.VisitInProgress)
	svcRow := testdb.Service(t, db, "SCL-01", model.CategoryConsultation, 100000, 20)

	s := New(db, time.UTC, nil).(*patientService)
	s.now = func() time.Time { return time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC) }

	tr, err := s.CreateTreatment(context.Background(), p.ID, CreateTreatmentRequest{
		VisitID:   v.ID,
		ServiceID: svcRow.ID,
		Quantity:  2,
		Discount:  decimal.NewFromInt(10000),
	}, doctor.ID)
	if err != nil {
		t.Fatalf("CreateTreatment() error = %v", err)
	}

	if !tr.Subtotal.Equal(decimal.NewFromInt(190000)) {
		t.Errorf("Subtotal = %s, want 190000", tr.Subtotal)
	}
	if !tr.UnitPrice.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("UnitPrice = %s, want 100000", tr.UnitPrice)
	}
	if tr.Service == nil || tr.Performer == nil || tr.Performer.ID != doctor.ID {
		t.Error("CreateTreatment() did not preload service and performer")
	}
	if tr.Images == nil {
		t.Error("Images = nil, want empty list")
	}

	var c model.Commission
	if err := db.Take(&c, "treatment_id = ?", tr.ID).Error; err != nil {
		t.Fatalf("commission not created: %v", err)
	}
	if !c.CommissionAmount.Equal(decimal.NewFromInt(38000)) {
		t.Errorf("CommissionAmount = %s, want 38000", c.CommissionAmount)
	}
	if c.UserID != doctor.ID || c.PeriodMonth != 3 || c.PeriodYear != 2026 || c.Status != model.CommissionPending {
		t.Errorf("commission = %+v", c)
	}

	var got model.Visit
	db.Take(&got, "id = ?", v.ID)
	if !got.TotalCost.Equal(decimal.NewFromInt(190000)) {
		t.Errorf("visit TotalCost = %s, want 190000", got.TotalCost)
	}

	// Rate changes later do not touch existing commissions.
	db.Model(&model.Service{}).Where("id = ?", svcRow.ID).Update("commission_rate", decimal.NewFromInt(50))
	db.Take(&c, "treatment_id = ?", tr.ID)
	if !c.CommissionAmount.Equal(decimal.NewFromInt(38000)) {
		t.Errorf("CommissionAmount after rate change = %s", c.CommissionAmount)
	}
}

func TestCreateTreatment_Errors(t *testing.T) {
	db := testdb.New(t)
	doctor := testdb.User(t, db, model.RoleDokter, "dokter1")
	p := testdb.Patient(t, db, "Rina")
	other := testdb.Patient(t, db, "Lain")
	v := testdb.Visit(t, db, p, doctor, time.Now(), 1, model.VisitWaiting)
	otherVisit := testdb.Visit(t, db, other, doctor, time.Now(), 2, model.VisitWaiting)
	svcRow := testdb.Service(t, db, "OBT-01", model.CategoryPharmacy, 50000, 10)
	s := New(db, time.UTC, nil)

	tests := []struct {
		name      string
		patientID uuid.UUID
		req       CreateTreatmentRequest
		wantErr   error
	}{
		{"unknown patient", uuid.New(), CreateTreatmentRequest{VisitID: v.ID, ServiceID: svcRow.ID}, ErrPatientNotFound},
		{"unknown visit", p.ID, CreateTreatmentRequest{VisitID: uuid.New(), ServiceID: svcRow.ID}, ErrVisitNotFound},
		{"unknown service", p.ID, CreateTreatmentRequest{VisitID: v.ID, ServiceID: uuid.New()}, ErrServiceNotFound},
		{"visit of another patient", p.ID, CreateTreatmentRequest{VisitID: otherVisit.ID, ServiceID: svcRow.ID}, ErrVisitPatientMismatch},
		{"discount above price", p.ID, CreateTreatmentRequest{VisitID: v.ID, ServiceID: svcRow.ID, Discount: decimal.NewFromInt(50001)}, ErrDiscountExceedsPrice},
		{"negative discount", p.ID, CreateTreatmentRequest{VisitID: v.ID, ServiceID: svcRow.ID, Discount: decimal.NewFromInt(-1)}, ErrDiscountExceedsPrice},
		{"negative quantity", p.ID, CreateTreatmentRequest{VisitID: v.ID, ServiceID: svcRow.ID, Quantity: -2}, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateTreatment(context.Background(), tt.patientID, tt.req, doctor.ID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateTreatment() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	var n int64
	db.Model(&model.Commission{}).Count(&n)
	if n != 0 {
		t.Errorf("failed calls left %d commissions behind", n)
	}
	var got model.Visit
	db.Take(&got, "id = ?", v.ID)
	if !got.TotalCost.IsZero() {
		t.Errorf("failed calls changed visit total to %s", got.TotalCost)
	}
}

func TestSubtotalAndCommissionAmount(t *testing.T) {
	tests := []struct {
		price, discount, rate int64
		qty                   int
		wantSubtotal          string
		wantCommission        string
	}{
		{100000, 10000, 20, 2, "190000", "38000"},
		{75000, 0, 15, 1, "75000", "11250"},
		{33333, 0, 7, 1, "33333", "2333.31"},
		{10000, 10000, 20, 1, "0", "0"},
	}
	for _, tt := range tests {
		sub := Subtotal(decimal.NewFromInt(tt.price), tt.qty, decimal.NewFromInt(tt.discount))
		if sub.String() != tt.wantSubtotal {
			t.Errorf("Subtotal() = %s, want %s", sub, tt.wantSubtotal)
		}
		if got := CommissionAmount(sub, decimal.NewFromInt(tt.rate)); got.String() != tt.wantCommission {
			t.Errorf("CommissionAmount() = %s, want %s", got, tt.wantCommission)
		}
	}
}

func TestList_Search(t *testing.T) {
	db := testdb.New(t)
	nurse := testdb.User(t, db, model.RolePerawat, "perawat1")
	budi := testdb.Patient(t, db, "Budi Santoso")
	testdb.Patient(t, db, "Siti Aminah")
	testdb.Patient(t, db, "Dewi 50%")
	testdb.Patient(t, db, "Dewi 500")
	db.Model(budi).Update("phone", "0877111222")
	testdb.Visit(t, db, budi, nurse, time.Now(), 1, model.VisitWaiting)
	testdb.Visit(t, db, budi, nurse, time.Now(), 2, model.VisitWaiting)

	s := New(db, time.UTC, nil)

	tests := []struct {
		name    string
		search  string
		wantLen int
	}{
		{"no filter", "", 4},
		{"name case-insensitive", "budi", 1},
		{"percent is literal", "50%", 1},
		{"underscore is literal", "w_", 0},
		{"shared prefix", "dewi", 2},
		{"phone", "7111", 1},
		{"patient number", budi.PatientNumber, 1},
		{"no match", "zzz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.List(context.Background(), ListRequest{Search: tt.search})
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(res.Patients) != tt.wantLen {
				t.Errorf("List(%q) len = %d, want %d", tt.search, len(res.Patients), tt.wantLen)
			}
		})
	}

	res, _ := s.List(context.Background(), ListRequest{Search: "budi"})
	if res.Patients[0].Counts == nil || res.Patients[0].Counts.Visits != 2 {
		t.Errorf("visit count = %+v, want 2", res.Patients[0].Counts)
	}
}

func TestGetAndRecords(t *testing.T) {
	db := testdb.New(t)
	doctor := testdb.User(t, db, model.RoleDokter, "dokter1")
	p := testdb.Patient(t, db, "Rina")
	svcRow := testdb.Service(t, db, "SCL-01", model.CategoryConsultation, 100000, 20)
	s := New(db, time.UTC, nil)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		v := testdb.Visit(t, db, p, doctor, time.Now().Add(-time.Duration(i)*time.Hour), i+1, model.VisitCompleted)
		if i < 3 {
			if _, err := s.CreateTreatment(ctx, p.ID, CreateTreatmentRequest{VisitID: v.ID, ServiceID: svcRow.ID}, doctor.ID); err != nil {
				t.Fatalf("CreateTreatment() error = %v", err)
			}
		}
	}

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Visits) != 10 {
		t.Errorf("Get() visits = %d, want latest 10", len(got.Visits))
	}
	if got.Counts.Visits != 12 || got.Counts.Treatments == nil || *got.Counts.Treatments != 3 {
		t.Errorf("Get() counts = %+v", got.Counts)
	}
	if got.Visits[0].Nurse == nil {
		t.Error("Get() visit nurse not preloaded")
	}

	rec, err := s.Records(ctx, p.ID)
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(rec.Treatments) != 3 || rec.Treatments[0].Service == nil || rec.Treatments[0].Visit == nil {
		t.Errorf("Records() = %d treatments", len(rec.Treatments))
	}

	if _, err := s.Get(ctx, uuid.New()); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Get() error = %v, wantErr %v", err, ErrPatientNotFound)
	}
	if _, err := s.Records(ctx, uuid.New()); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Records() error = %v, wantErr %v", err, ErrPatientNotFound)
	}
}
