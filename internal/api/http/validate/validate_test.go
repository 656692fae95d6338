package validate

import (
	"testing"
	"time"
)

type registerBody struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,min=3"`
	Phone    string `json:"phone" validate:"required,min=10,phone"`
	Role     string `json:"role" validate:"omitempty,oneof=DOKTER PERAWAT"`
	Birth    string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
}

func TestStruct(t *testing.T) {
	valid := registerBody{
		Username: "drgrina", Email: "rina@roxydental.id", Password: "rahasia",
		FullName: "drg. Rina", Phone: "081234567890", Role: "DOKTER", Birth: "1990-04-12",
	}

	tests := []struct {
		name   string
		mutate func(*registerBody)
		want   []FieldError
	}{
		{"valid", func(*registerBody) {}, nil},
		{"short username", func(b *registerBody) { b.Username = "ab" },
			[]FieldError{{"username", "Username minimal 3 karakter"}}},
		{"bad email", func(b *registerBody) { b.Email = "rina" },
			[]FieldError{{"email", "Format email tidak valid"}}},
		{"short password", func(b *registerBody) { b.Password = "123" },
			[]FieldError{{"password", "Password minimal 6 karakter"}}},
		{"bad role", func(b *registerBody) { b.Role = "ADMIN" },
			[]FieldError{{"role", "Role harus DOKTER atau PERAWAT"}}},
		{"short phone", func(b *registerBody) { b.Phone = "0812" },
			[]FieldError{{"phone", "Nomor telepon minimal 10 digit"}}},
		{"phone too long", func(b *registerBody) { b.Phone = "0812345678901234567" },
			[]FieldError{{"phone", "Nomor telepon tidak valid"}}},
		{"bad date", func(b *registerBody) { b.Birth = "12/04/1990" },
			[]FieldError{{"dateOfBirth", "Format tanggal tidak valid"}}},
		{"missing full name", func(b *registerBody) { b.FullName = "" },
			[]FieldError{{"fullName", "fullName wajib diisi"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			got := Struct(b)
			if len(got) != len(tt.want) {
				t.Fatalf("Struct() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Struct()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStruct_InternationalPhone(t *testing.T) {
	b := registerBody{
		Username: "drgrina", Email: "rina@roxydental.id", Password: "rahasia",
		FullName: "drg. Rina", Phone: "+6281234567890",
	}
	if errs := Struct(b); errs != nil {
		t.Errorf("Struct() = %v, want nil", errs)
	}
}

func TestParseTime(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"1990-04-12", time.Date(1990, 4, 12, 0, 0, 0, 0, wib), false},
		{"2026-10-15T09:30", time.Date(2026, 10, 15, 9, 30, 0, 0, wib), false},
		{"2026-10-15T02:30:00Z", time.Date(2026, 10, 15, 2, 30, 0, 0, time.UTC), false},
		{"15/10/2026", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in, wib)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseTime() = %v, want %v", got, tt.want)
			}
		})
	}
}
