// Package midtrans wraps the Midtrans Snap API for non-cash clinic payments.
package midtrans

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	mt "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/roxydental/roxydental_backend/config"
)

var ErrInvalidRequest = errors.New("midtrans: invalid transaction request")

// Status is the clinic-side payment status a notification maps to.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
	StatusFailed  Status = "FAILED"
)

// Transaction describes a Snap checkout for one payment.
type Transaction struct {
	OrderID      string
	Amount       int64
	ItemName     string
	CustomerName string
	Phone        string
	Method       string // TRANSFER, DEBIT, CREDIT, QRIS
}

type Checkout struct {
	Token       string
	RedirectURL string
}

// Gateway creates hosted checkouts.
type Gateway interface {
	CreateCheckout(ctx context.Context, tx Transaction) (Checkout, error)
}

type Client struct {
	snap        snap.Client
	serverKey   string
	finishURL   string
	expiryHours int64
}

func New(cfg config.MidtransConfig) *Client {
	env := mt.Sandbox
	if cfg.Production {
		env = mt.Production
	}
	c := &Client{serverKey: cfg.ServerKey, finishURL: cfg.FinishURL, expiryHours: int64(cfg.ExpiryHours)}
	c.snap.New(cfg.ServerKey, env)
	return c
}

func (c *Client) ServerKey() string { return c.serverKey }

func (c *Client) CreateCheckout(_ context.Context, tx Transaction) (Checkout, error) {
	if tx.OrderID == "" || tx.Amount <= 0 {
		return Checkout{}, ErrInvalidRequest
	}

	req := &snap.Request{
		TransactionDetails: mt.TransactionDetails{OrderID: tx.OrderID, GrossAmt: tx.Amount},
		Items: &[]mt.ItemDetails{{
			ID:    tx.OrderID,
			Name:  truncate(orDefault(tx.ItemName, "Perawatan Gigi"), 50),
			Price: tx.Amount,
			Qty:   1,
		}},
		CustomerDetail: &mt.CustomerDetails{
			FName: truncate(tx.CustomerName, 255),
			Phone: tx.Phone,
		},
		EnabledPayments: enabledPayments(tx.Method),
	}
	if c.finishURL != "" {
		req.Callbacks = &snap.Callbacks{Finish: c.finishURL}
	}
	if c.expiryHours > 0 {
		req.Expiry = &snap.ExpiryDetails{Unit: "hour", Duration: c.expiryHours}
	}

	resp, mErr := c.snap.CreateTransaction(req)
	if mErr != nil {
		return Checkout{}, fmt.Errorf("midtrans snap: %s", mErr.GetMessage())
	}
	return Checkout{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func enabledPayments(method string) []snap.SnapPaymentType {
	switch method {
	case "TRANSFER":
		return []snap.SnapPaymentType{snap.PaymentTypeBankTransfer, "bca_va", "bni_va", "bri_va", "permata_va"}
	case "DEBIT", "CREDIT":
		return []snap.SnapPaymentType{snap.PaymentTypeCreditCard}
	case "QRIS":
		return []snap.SnapPaymentType{"qris", snap.PaymentTypeGopay, snap.PaymentTypeShopeepay}
	}
	return nil
}

// Notification is the HTTP notification body Midtrans posts after a status change.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// Signature computes sha512(order_id + status_code + gross_amount + server_key) in hex.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the notification carries a valid signature for serverKey.
func (n Notification) Verify(serverKey string) bool {
	if n.SignatureKey == "" || serverKey == "" {
		return false
	}
	want := Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(n.SignatureKey))) == 1
}

// Status maps the Midtrans transaction status onto the clinic payment status.
func (n Notification) Status() Status {
	switch n.TransactionStatus {
	case "settlement":
		return StatusPaid
	case "capture":
		if n.FraudStatus == "challenge" {
			return StatusPending
		}
		return StatusPaid
	case "deny", "cancel", "expire", "failure":
		return StatusFailed
	default:
		return StatusPending
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
