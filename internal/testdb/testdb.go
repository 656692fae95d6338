// Package testdb opens an isolated in-memory database for service tests.
package testdb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/pkg/database"
)

// New returns a migrated database that lives until the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	// A single connection keeps the shared-cache database alive and serializes writers.
	db, err := database.OpenDialector(sqlite.Open(dsn), database.Options{MaxOpen: 1, MaxIdle: 1})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(context.Background(), db, model.All()...); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// Fixtures creates rows with sensible defaults.

func User(t testing.TB, db *gorm.DB, role model.Role, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username:     username,
		Email:        username + "@roxydental.id",
		PasswordHash: "x",
		Role:         role,
		FullName:     "Staff " + username,
		Phone:        "081234567890",
		IsActive:     true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func Patient(t testing.TB, db *gorm.DB, name string) *model.Patient {
	t.Helper()
	p := &model.Patient{
		PatientNumber: "P" + uuid.NewString()[:12],
		FullName:      name,
		DateOfBirth:   time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		Gender:        model.GenderFemale,
		Phone:         "081298765432",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return p
}

func Service(t testing.TB, db *gorm.DB, code string, category model.ServiceCategory, price, rate int64) *model.Service {
	t.Helper()
	s := &model.Service{
		ServiceCode:    code,
		ServiceName:    "Layanan " + code,
		Category:       category,
		BasePrice:      decimal.NewFromInt(price),
		CommissionRate: decimal.NewFromInt(rate),
		IsActive:       true,
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return s
}

func Visit(t testing.TB, db *gorm.DB, patient *model.Patient, nurse *model.User, at time.Time, queue int, status model.VisitStatus) *model.Visit {
	t.Helper()
	v := &model.Visit{
		VisitNumber: "V" + uuid.NewString()[:8],
		PatientID:   patient.ID,
		NurseID:     nurse.ID,
		VisitDate:   at.UTC(),
		QueueNumber: queue,
		Status:      status,
		TotalCost:   decimal.Zero,
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create visit: %v", err)
	}
	return v
}
