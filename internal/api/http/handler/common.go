package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/api/http/validate"
	"github.com/roxydental/roxydental_backend/pkg/reqctx"
)

// bind decodes the JSON body into dst and validates it.
func bind(c fiber.Ctx, dst any) error {
	if err := c.Bind().JSON(dst); err != nil {
		return response.BadRequest("Format request tidak valid")
	}
	if errs := validate.Struct(dst); errs != nil {
		return response.Invalid(errs)
	}
	return nil
}

func callerID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := reqctx.UserIDFromContext(c.Context())
	if !ok {
		return uuid.Nil, response.Unauthorized("Token tidak ditemukan")
	}
	return id, nil
}

func paramID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, response.BadRequest("ID tidak valid")
	}
	return id, nil
}

func queryInt(c fiber.Ctx, name string, def int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return n
}

// parseTime reads a validated date field; field names the value in the error.
func parseTime(field, s string, loc *time.Location) (time.Time, error) {
	t, err := validate.ParseTime(s, loc)
	if err != nil {
		return time.Time{}, response.Invalid([]validate.FieldError{{Field: field, Message: "Format tanggal tidak valid"}})
	}
	return t, nil
}

func parseOptionalTime(field string, s *string, loc *time.Location) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseTime(field, *s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
