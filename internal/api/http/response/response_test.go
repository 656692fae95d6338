package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/failure", func(c fiber.Ctx) error { return NotFound("Pasien tidak ditemukan") })
	app.Get("/invalid", func(c fiber.Ctx) error {
		return Invalid([]map[string]string{{"field": "username", "message": "Username minimal 3 karakter"}})
	})
	app.Get("/boom", func(c fiber.Ctx) error { return errors.New("db down") })
	app.Get("/ok", func(c fiber.Ctx) error { return OK(c, "Berhasil", []string{}) })

	tests := []struct {
		path        string
		wantStatus  int
		wantSuccess bool
		wantMessage string
	}{
		{"/failure", 404, false, "Pasien tidak ditemukan"},
		{"/invalid", 400, false, "Validasi gagal"},
		{"/boom", 500, false, MsgInternal},
		{"/ok", 200, true, "Berhasil"},
		{"/nope", 404, false, "Endpoint tidak ditemukan"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			body, _ := io.ReadAll(res.Body)
			var env map[string]any
			if err := json.Unmarshal(body, &env); err != nil {
				t.Fatalf("decode %s: %v", body, err)
			}
			if res.StatusCode != tt.wantStatus || env["success"] != tt.wantSuccess || env["message"] != tt.wantMessage {
				t.Errorf("GET %s = %d %s", tt.path, res.StatusCode, body)
			}
		})
	}
}

func TestOK_KeepsEmptyData(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error { return OK(c, "Daftar", []string{}) })

	res, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	if string(body) != `{"success":true,"message":"Daftar","data":[]}` {
		t.Errorf("body = %s", body)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"failure", Forbidden("Akses ditolak"), fiber.StatusForbidden},
		{"wrapped failure", fmt.Errorf("handler: %w", NotFound("x")), fiber.StatusNotFound},
		{"fiber error", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{"plain", errors.New("db down"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Errorf("StatusOf() = %d, want %d", got, tt.want)
			}
		})
	}
}
