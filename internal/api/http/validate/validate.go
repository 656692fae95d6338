// Package validate checks request bodies with validator/v10 and renders
// failures as Indonesian field messages.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

const DefaultRegion = "ID"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("phone", validPhone)
		_ = v.RegisterValidation("isodate", validDate)
	})
	return v
}

// validPhone accepts numbers phonenumbers considers possible for Indonesia,
// in local (08…) or international (+62…) form.
func validPhone(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return true
	}
	num, err := phonenumbers.Parse(raw, DefaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}

func validDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := ParseTime(s, time.UTC)
	return err == nil
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

// ParseTime accepts RFC 3339 timestamps and plain dates. Values without an
// offset are read in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Struct validates s and returns nil when it is valid.
func Struct(s any) []FieldError {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "body", Message: "Data tidak valid"}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// Field-specific messages take precedence over the per-tag defaults.
var fieldMessages = map[string]string{
	"username.min":    "Username minimal 3 karakter",
	"password.min":    "Password minimal 6 karakter",
	"newPassword.min": "Password baru minimal 6 karakter",
	"role.oneof":      "Role harus DOKTER atau PERAWAT",
	"email.email":     "Format email tidak valid",
	"fullName.min":    "Nama lengkap minimal 3 karakter",
	"phone.min":       "Nomor telepon minimal 10 digit",
	"phone.phone":     "Nomor telepon tidak valid",
	"gender.oneof":    "Gender harus L atau P",
}

func message(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s wajib diisi", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s minimal %s karakter", field, fe.Param())
		}
		return fmt.Sprintf("%s minimal %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s maksimal %s karakter", field, fe.Param())
		}
		return fmt.Sprintf("%s maksimal %s", field, fe.Param())
	case "gte", "gt":
		return fmt.Sprintf("%s minimal %s", field, fe.Param())
	case "lte", "lt":
		return fmt.Sprintf("%s maksimal %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "email":
		return "Format email tidak valid"
	case "uuid", "uuid4", "uuid7":
		return fmt.Sprintf("%s tidak valid", field)
	case "datetime", "isodate":
		return "Format tanggal tidak valid"
	case "phone":
		return "Nomor telepon tidak valid"
	}
	return fmt.Sprintf("%s tidak valid", field)
}
