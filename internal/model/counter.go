package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Counter backs gap-free numbering (visit numbers, daily queues, payment numbers).
type Counter struct {
	Name      string `gorm:"size:64;primaryKey"`
	Value     int64  `gorm:"not null"`
	UpdatedAt time.Time
}

// NextValue increments the named counter and returns the new value. The first call
// for a name returns start+1. Must run inside a transaction: the UPDATE holds the
// row lock until commit, so concurrent callers are serialized.
func NextValue(tx *gorm.DB, name string, start int64) (int64, error) {
	seed := Counter{Name: name, Value: start}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, fmt.Errorf("seed counter %s: %w", name, err)
	}

	res := tx.Model(&Counter{}).
		Where("name = ?", name).
		Updates(map[string]any{"value": gorm.Expr("value + 1"), "updated_at": tx.NowFunc()})
	if res.Error != nil {
		return 0, fmt.Errorf("increment counter %s: %w", name, res.Error)
	}

	var c Counter
	if err := tx.Where("name = ?", name).Take(&c).Error; err != nil {
		return 0, fmt.Errorf("read counter %s: %w", name, err)
	}
	return c.Value, nil
}

// Counter names.
const (
	CounterVisitNumber = "visit_number"
	VisitNumberBase    = 999 // first visit is V1000
)

func QueueCounter(day time.Time) string   { return "queue:" + day.Format("2006-01-02") }
func PaymentCounter(day time.Time) string { return "payment:" + day.Format("20060102") }
