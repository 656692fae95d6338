// Package model holds the gorm models persisted by the clinic backend.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Amounts are rendered as JSON numbers, matching what the dashboard expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// Base is embedded by every table keyed by a UUID.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a time-ordered UUID when the caller has not set one.
func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		b.ID = id
	}
	return nil
}

// All lists every migrated model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Patient{},
		&Service{},
		&Visit{},
		&Treatment{},
		&Commission{},
		&Schedule{},
		&LeaveRequest{},
		&Payment{},
		&Counter{},
	}
}
