package midtrans

import (
	"context"
	"errors"
	"testing"

	"github.com/roxydental/roxydental_backend/config"
)

func TestNotification_Verify(t *testing.T) {
	const key = "SB-Mid-server-test"
	valid := Notification{
		OrderID:     "PAY202601150001",
		StatusCode:  "200",
		GrossAmount: "150000.00",
	}
	valid.SignatureKey = Signature(valid.OrderID, valid.StatusCode, valid.GrossAmount, key)

	tampered := valid
	tampered.GrossAmount = "1.00"

	tests := []struct {
		name string
		n    Notification
		key  string
		want bool
	}{
		{"valid", valid, key, true},
		{"tampered amount", tampered, key, false},
		{"wrong key", valid, "other", false},
		{"missing signature", Notification{OrderID: "x"}, key, false},
		{"empty key", valid, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.Verify(tt.key); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignature_Shape(t *testing.T) {
	got := Signature("1", "200", "1000.00", "k")
	if len(got) != 128 {
		t.Fatalf("Signature() length = %d, want 128", len(got))
	}
	if got != Signature("1", "200", "1000.00", "k") {
		t.Error("Signature() is not deterministic")
	}
}

func TestNotification_Status(t *testing.T) {
	tests := []struct {
		status, fraud string
		want          Status
	}{
		{"settlement", "", StatusPaid},
		{"capture", "accept", StatusPaid},
		{"capture", "challenge", StatusPending},
		{"pending", "", StatusPending},
		{"deny", "", StatusFailed},
		{"cancel", "", StatusFailed},
		{"expire", "", StatusFailed},
		{"failure", "", StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.status+"/"+tt.fraud, func(t *testing.T) {
			n := Notification{TransactionStatus: tt.status, FraudStatus: tt.fraud}
			if got := n.Status(); got != tt.want {
				t.Errorf("Status() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_CreateCheckout_Invalid(t *testing.T) {
	c := New(config.MidtransConfig{ServerKey: "SB-Mid-server-test"})
	_, err := c.CreateCheckout(context.Background(), Transaction{OrderID: "", Amount: 100})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("CreateCheckout() error = %v, wantErr %v", err, ErrInvalidRequest)
	}
}
