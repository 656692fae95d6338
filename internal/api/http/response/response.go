// Package response writes the JSON envelope every endpoint answers with.
package response

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
)

const MsgInternal = "Terjadi kesalahan pada server"

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Failure is an error that already knows how it should be rendered.
type Failure struct {
	Status  int
	Message string
	Errors  any
}

func (f *Failure) Error() string { return f.Message }

func Fail(status int, msg string) error {
	return &Failure{Status: status, Message: msg}
}

func BadRequest(msg string) error   { return Fail(fiber.StatusBadRequest, msg) }
func Unauthorized(msg string) error { return Fail(fiber.StatusUnauthorized, msg) }
func Forbidden(msg string) error    { return Fail(fiber.StatusForbidden, msg) }
func NotFound(msg string) error     { return Fail(fiber.StatusNotFound, msg) }

// Invalid reports field-level validation problems.
func Invalid(fields any) error {
	return &Failure{Status: fiber.StatusBadRequest, Message: "Validasi gagal", Errors: fields}
}

func OK(c fiber.Ctx, msg string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: msg, Data: data})
}

func Created(c fiber.Ctx, msg string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: msg, Data: data})
}

// ErrorHandler is installed as fiber's ErrorHandler. Unknown errors are logged
// and hidden behind a generic 500.
// StatusOf reports the status ErrorHandler writes for err.
func StatusOf(err error) int {
	var f *Failure
	if errors.As(err, &f) {
		return f.Status
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func ErrorHandler(c fiber.Ctx, err error) error {
	var f *Failure
	if errors.As(err, &f) {
		return c.Status(f.Status).JSON(Envelope{Message: f.Message, Errors: f.Errors})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(Envelope{Message: fiberMessage(fe)})
	}

	slog.ErrorContext(c.Context(), "unhandled request error",
		"method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(Envelope{Message: MsgInternal})
}

func fiberMessage(fe *fiber.Error) string {
	switch fe.Code {
	case fiber.StatusNotFound:
		return "Endpoint tidak ditemukan"
	case fiber.StatusMethodNotAllowed:
		return "Metode tidak diizinkan"
	case fiber.StatusRequestEntityTooLarge:
		return "Ukuran request terlalu besar"
	case fiber.StatusTooManyRequests:
		return "Terlalu banyak request, coba lagi nanti"
	case fiber.StatusInternalServerError:
		return MsgInternal
	}
	return fe.Message
}
