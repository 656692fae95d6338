package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/testdb"
	"github.com/roxydental/roxydental_backend/pkg/midtrans"
)

const serverKey = "SB-Mid-server-test"

type fakeGateway struct {
	calls []midtrans.Transaction
	err   error
}

func (f *fakeGateway) CreateCheckout(_ context.Context, tx midtrans.Transaction) (midtrans.Checkout, error) {
	f.calls = append(f.calls, tx)
	if f.err != nil {
		return midtrans.Checkout{}, f.err
	}
	return midtrans.Checkout{Token: "snap-" + tx.OrderID, RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/" + tx.OrderID}, nil
}

type fixture struct {
	db    *gorm.DB
	nurse *model.User
	visit *model.Visit
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testdb.New(t)
	nurse := testdb.User(t, db, model.RolePerawat, "perawat1")
	visit := testdb.Visit(t, db, testdb.Patient(t, db, "Budi"), nurse, time.Now(), 1, model.VisitCompleted)
	return fixture{db: db, nurse: nurse, visit: visit}
}

func newService(db *gorm.DB, gw midtrans.Gateway) *paymentService {
	s := New(db, gw, serverKey, time.UTC, nil).(*paymentService)
	s.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return s
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreate_Cash(t *testing.T) {
	f := setup(t)
	s := newService(f.db, nil)
	ctx := context.Background()

	tests := []struct {
		name       string
		paid       *decimal.Decimal
		wantChange string
		wantErr    error
	}{
		{"exact", nil, "0", nil},
		{"with change", func() *decimal.Decimal { d := dec("200000"); return &d }(), "25000", nil},
		{"short", func() *decimal.Decimal { d := dec("100000"); return &d }(), "", ErrInsufficientPayment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Create(ctx, CreateRequest{
				VisitID: f.visit.ID, PaymentMethod: model.PaymentCash, Amount: dec("175000"), PaidAmount: tt.paid,
			}, f.nurse.ID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Status != model.PaymentPaid || !got.ChangeAmount.Equal(dec(tt.wantChange)) {
				t.Errorf("Create() status %s change %s, want PAID %s", got.Status, got.ChangeAmount, tt.wantChange)
			}
		})
	}
}

func TestCreate_Numbering(t *testing.T) {
	f := setup(t)
	s := newService(f.db, nil)
	ctx := context.Background()

	var numbers []string
	for i := 0; i < 3; i++ {
		p, err := s.Create(ctx, CreateRequest{VisitID: f.visit.ID, PaymentMethod: model.PaymentTransfer, Amount: dec("50000")}, f.nurse.ID)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		numbers = append(numbers, p.PaymentNumber)
	}
	want := []string{"PAY202610150001", "PAY202610150002", "PAY202610150003"}
	for i := range want {
		if numbers[i] != want[i] {
			t.Errorf("payment %d number = %s, want %s", i, numbers[i], want[i])
		}
	}

	s.now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }
	p, err := s.Create(ctx, CreateRequest{VisitID: f.visit.ID, PaymentMethod: model.PaymentQRIS, Amount: dec("50000")}, f.nurse.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.PaymentNumber != "PAY202610160001" {
		t.Errorf("next-day number = %s, want PAY202610160001", p.PaymentNumber)
	}
}

func TestCreate_Errors(t *testing.T) {
	f := setup(t)
	s := newService(f.db, nil)

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{"unknown visit", CreateRequest{VisitID: uuid.New(), PaymentMethod: model.PaymentCash, Amount: dec("1000")}, ErrVisitNotFound},
		{"bad method", CreateRequest{VisitID: f.visit.ID, PaymentMethod: "BITCOIN", Amount: dec("1000")}, ErrInvalidMethod},
		{"zero amount", CreateRequest{VisitID: f.visit.ID, PaymentMethod: model.PaymentCash, Amount: decimal.Zero}, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Create(context.Background(), tt.req, f.nurse.ID); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreate_Midtrans(t *testing.T) {
	f := setup(t)
	gw := &fakeGateway{}
	s := newService(f.db, gw)
	ctx := context.Background()

	p, err := s.Create(ctx, CreateRequest{VisitID: f.visit.ID, PaymentMethod: model.PaymentQRIS, Amount: dec("150000")}, f.nurse.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.Status != model.PaymentPending || p.SnapToken == nil || *p.SnapToken != "snap-"+p.PaymentNumber {
		t.Errorf("Create() = %+v", p)
	}
	if len(gw.calls) != 1 || gw.calls[0].Amount != 150000 || gw.calls[0].CustomerName != "Budi" || gw.calls[0].Method != "QRIS" {
		t.Errorf("gateway calls = %+v", gw.calls)
	}

	// Cash never goes through the gateway.
	if _, err := s.Create(ctx, CreateRequest{VisitID: f.visit.ID, PaymentMethod: model.PaymentCash, Amount: dec("1000")}, f.nurse.ID); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(gw.calls) != 1 {
		t.Errorf("gateway calls = %d, want 1", len(gw.calls))
	}

	gw.err = errors.New("503 from snap")
	_, err = s.Create(ctx, CreateRequest{VisitID: f.visit.ID, PaymentMethod: model.PaymentTransfer, Amount: dec("1000")}, f.nurse.ID)
	if !errors.Is(err, ErrGatewayFailure) {
		t.Fatalf("Create() error = %v, wantErr %v", err, ErrGatewayFailure)
	}
	var failed int64
	f.db.Model(&model.Payment{}).Where("status = ?", model.PaymentFailed).Count(&failed)
	if failed != 1 {
		t.Errorf("failed payments = %d, want 1", failed)
	}
}

func notification(orderID, status string) midtrans.Notification {
	n := midtrans.Notification{
		OrderID: orderID, StatusCode: "200", GrossAmount: "150000.00",
		TransactionStatus: status, TransactionID: "tx-" + orderID,
	}
	n.SignatureKey = midtrans.Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	return n
}

func TestHandleNotification(t *testing.T) {
	f := setup(t)
	s := newService(f.db, &fakeGateway{})
	ctx := context.Background()

	p, err := s.Create(ctx, CreateRequest{VisitID: f.visit.ID, PaymentMethod: model.PaymentTransfer, Amount: dec("150000")}, f.nurse.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	forged := notification(p.PaymentNumber, "settlement")
	forged.SignatureKey = strings.Repeat("0", 128)
	if _, err := s.HandleNotification(ctx, forged); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("HandleNotification() error = %v, wantErr %v", err, ErrInvalidSignature)
	}
	if _, err := s.HandleNotification(ctx, notification("PAY-unknown", "settlement")); !errors.Is(err, ErrPaymentNotFound) {
		t.Errorf("HandleNotification() error = %v, wantErr %v", err, ErrPaymentNotFound)
	}

	pending, err := s.HandleNotification(ctx, notification(p.PaymentNumber, "pending"))
	if err != nil || pending.Status != model.PaymentPending {
		t.Fatalf("HandleNotification(pending) = %v, %v", pending, err)
	}

	paid, err := s.HandleNotification(ctx, notification(p.PaymentNumber, "settlement"))
	if err != nil {
		t.Fatalf("HandleNotification() error = %v", err)
	}
	if paid.Status != model.PaymentPaid || !paid.PaidAmount.Equal(dec("150000")) {
		t.Errorf("HandleNotification() = status %s paid %s", paid.Status, paid.PaidAmount)
	}
	if paid.ReferenceNumber == nil || *paid.ReferenceNumber != "tx-"+p.PaymentNumber {
		t.Errorf("ReferenceNumber = %v", paid.ReferenceNumber)
	}

	// A late expire notification does not undo a settlement.
	again, err := s.HandleNotification(ctx, notification(p.PaymentNumber, "expire"))
	if err != nil || again.Status != model.PaymentPaid {
		t.Errorf("HandleNotification(expire after settle) = %v, %v", again, err)
	}

	disabled := New(f.db, nil, "", time.UTC, nil)
	if _, err := disabled.HandleNotification(ctx, notification(p.PaymentNumber, "settlement")); !errors.Is(err, ErrGatewayDisabled) {
		t.Errorf("HandleNotification() error = %v, wantErr %v", err, ErrGatewayDisabled)
	}
}

func TestListAndGet(t *testing.T) {
	f := setup(t)
	s := newService(f.db, nil)
	ctx := context.Background()

	first, err := s.Create(ctx, CreateRequest{VisitID: f.visit.ID, PaymentMethod: model.PaymentCash, Amount: dec("1000")}, f.nurse.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	s.now = func() time.Time { return time.Date(2026, 10, 15, 11, 0, 0, 0, time.UTC) }
	second, err := s.Create(ctx, CreateRequest{VisitID: f.visit.ID, PaymentMethod: model.PaymentDebit, Amount: dec("2000")}, f.nurse.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	list, err := s.ListByVisit(ctx, f.visit.ID)
	if err != nil {
		t.Fatalf("ListByVisit() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("ListByVisit() not ordered by payment date desc")
	}
	if list[0].Receiver == nil || list[0].Receiver.FullName != f.nurse.FullName {
		t.Errorf("Receiver = %+v", list[0].Receiver)
	}
	if _, err := s.ListByVisit(ctx, uuid.New()); !errors.Is(err, ErrVisitNotFound) {
		t.Errorf("ListByVisit() error = %v, wantErr %v", err, ErrVisitNotFound)
	}

	got, err := s.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Visit == nil || got.Visit.Patient == nil || got.Visit.Patient.FullName != "Budi" {
		t.Errorf("Get() did not preload visit.patient")
	}
	if _, err := s.Get(ctx, uuid.New()); !errors.Is(err, ErrPaymentNotFound) {
		t.Errorf("Get() error = %v, wantErr %v", err, ErrPaymentNotFound)
	}
}
