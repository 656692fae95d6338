package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/service/user"
)

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// GET /api/users
func (h *UserHandler) List(c fiber.Ctx) error {
	var role *model.Role
	if s := c.Query("role"); s != "" {
		r := model.Role(s)
		if !r.Valid() {
			return response.BadRequest("Role harus DOKTER atau PERAWAT")
		}
		role = &r
	}

	users, err := h.svc.List(c.Context(), role)
	if err != nil {
		return mapUserError(err)
	}
	return response.OK(c, "Daftar user berhasil diambil", users)
}

// GET /api/users/:id
func (h *UserHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	u, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapUserError(err)
	}
	return response.OK(c, "Detail user berhasil diambil", u)
}

// POST /api/users
func (h *UserHandler) Create(c fiber.Ctx) error {
	var body struct {
		Username       string  `json:"username" validate:"required,min=3"`
		Email          string  `json:"email" validate:"required,email"`
		Password       string  `json:"password" validate:"required,min=6"`
		FullName       string  `json:"fullName" validate:"required,min=3"`
		Role           string  `json:"role" validate:"required,oneof=DOKTER PERAWAT"`
		Phone          string  `json:"phone" validate:"required,min=10,phone"`
		Specialization *string `json:"specialization"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	u, err := h.svc.Create(c.Context(), user.CreateRequest{
		Username:       body.Username,
		Email:          body.Email,
		Password:       body.Password,
		FullName:       body.FullName,
		Role:           model.Role(body.Role),
		Phone:          body.Phone,
		Specialization: body.Specialization,
	})
	if err != nil {
		return mapUserError(err)
	}
	return response.Created(c, "User berhasil ditambahkan", u)
}

// PUT /api/users/:id
func (h *UserHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var body struct {
		FullName       *string `json:"fullName" validate:"omitempty,min=3"`
		Phone          *string `json:"phone" validate:"omitempty,min=10,phone"`
		Specialization *string `json:"specialization"`
		IsActive       *bool   `json:"isActive"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	u, err := h.svc.Update(c.Context(), id, user.UpdateRequest{
		FullName:       body.FullName,
		Phone:          body.Phone,
		Specialization: body.Specialization,
		IsActive:       body.IsActive,
	})
	if err != nil {
		return mapUserError(err)
	}
	return response.OK(c, "User berhasil diperbarui", u)
}

// DELETE /api/users/:id
func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapUserError(err)
	}
	return response.OK(c, "User berhasil dihapus", nil)
}

// PATCH /api/users/:id/toggle-status
func (h *UserHandler) ToggleStatus(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	res, err := h.svc.ToggleStatus(c.Context(), id)
	if err != nil {
		return mapUserError(err)
	}
	msg := "User berhasil dinonaktifkan"
	if res.IsActive {
		msg = "User berhasil diaktifkan"
	}
	return response.OK(c, msg, res)
}

// GET /api/users/profile
func (h *UserHandler) Profile(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	u, err := h.svc.Profile(c.Context(), uid)
	if err != nil {
		return mapUserError(err)
	}
	return response.OK(c, "Profil berhasil diambil", u)
}

// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	var body struct {
		FullName       *string `json:"fullName" validate:"omitempty,min=3"`
		Phone          *string `json:"phone" validate:"omitempty,min=10,phone"`
		Specialization *string `json:"specialization"`
		Education      *string `json:"education"`
		Experience     *string `json:"experience"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	u, err := h.svc.UpdateProfile(c.Context(), uid, user.ProfileUpdate{
		FullName:       body.FullName,
		Phone:          body.Phone,
		Specialization: body.Specialization,
		Education:      body.Education,
		Experience:     body.Experience,
	})
	if err != nil {
		return mapUserError(err)
	}
	return response.OK(c, "Profil berhasil diperbarui", u)
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return response.NotFound("User tidak ditemukan")
	case errors.Is(err, user.ErrUserExists):
		return response.BadRequest("Username atau email sudah terdaftar")
	case errors.Is(err, user.ErrHasRelatedData):
		return response.BadRequest("User masih memiliki data terkait")
	case errors.Is(err, user.ErrInvalidRole):
		return response.BadRequest("Role harus DOKTER atau PERAWAT")
	default:
		return err
	}
}
