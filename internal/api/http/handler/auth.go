package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/service/auth"
	"github.com/roxydental/roxydental_backend/pkg/token"
)

type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// POST /api/auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Username string `json:"username" validate:"required,min=3"`
		Password string `json:"password" validate:"required,min=6"`
		Role     string `json:"role" validate:"required,oneof=DOKTER PERAWAT"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	res, err := h.svc.Login(c.Context(), auth.LoginRequest{
		Username: body.Username,
		Password: body.Password,
		Role:     model.Role(body.Role),
	})
	if err != nil {
		return mapAuthError(err)
	}
	return response.OK(c, "Login berhasil", res)
}

// POST /api/auth/register
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var body struct {
		Username       string  `json:"username" validate:"required,min=3"`
		Email          string  `json:"email" validate:"required,email"`
		Password       string  `json:"password" validate:"required,min=6"`
		FullName       string  `json:"fullName" validate:"required,min=3"`
		Phone          string  `json:"phone" validate:"required,min=10,phone"`
		Specialization *string `json:"specialization"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	res, err := h.svc.Register(c.Context(), auth.RegisterRequest{
		Username:       body.Username,
		Email:          body.Email,
		Password:       body.Password,
		FullName:       body.FullName,
		Phone:          body.Phone,
		Specialization: body.Specialization,
	})
	if err != nil {
		return mapAuthError(err)
	}
	return response.Created(c, "Registrasi berhasil", res)
}

// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var body struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	if err := h.svc.ForgotPassword(c.Context(), body.Email); err != nil {
		return mapAuthError(err)
	}
	return response.OK(c, "Jika email terdaftar, tautan reset password telah dikirim", nil)
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var body struct {
		Email       string `json:"email" validate:"required,email"`
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=6"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	err := h.svc.ResetPassword(c.Context(), auth.ResetPasswordRequest{
		Email:       body.Email,
		Token:       body.Token,
		NewPassword: body.NewPassword,
	})
	if err != nil {
		return mapAuthError(err)
	}
	return response.OK(c, "Password berhasil direset", nil)
}

// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	var body struct {
		CurrentPassword string `json:"currentPassword" validate:"required"`
		NewPassword     string `json:"newPassword" validate:"required,min=6"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	if err := h.svc.ChangePassword(c.Context(), uid, body.CurrentPassword, body.NewPassword); err != nil {
		return mapAuthError(err)
	}
	return response.OK(c, "Password berhasil diubah", nil)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	u, err := h.svc.Me(c.Context(), uid)
	if err != nil {
		return mapAuthError(err)
	}
	return response.OK(c, "Data user berhasil diambil", fiber.Map{"user": u})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	claims, ok := token.ClaimsFromFiber(c)
	if !ok {
		return response.Unauthorized("Token tidak ditemukan")
	}

	if err := h.svc.Logout(c.Context(), claims); err != nil {
		return err
	}
	return response.OK(c, "Logout berhasil", nil)
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return response.Unauthorized("Username atau password salah")
	case errors.Is(err, auth.ErrRoleMismatch):
		return response.Forbidden("Role tidak sesuai")
	case errors.Is(err, auth.ErrAccountInactive):
		return response.Forbidden("Akun tidak aktif")
	case errors.Is(err, auth.ErrAccountLocked):
		return response.Fail(fiber.StatusTooManyRequests, "Terlalu banyak percobaan login, coba lagi nanti")
	case errors.Is(err, auth.ErrUserExists):
		return response.BadRequest("Username atau email sudah terdaftar")
	case errors.Is(err, auth.ErrUserNotFound):
		return response.NotFound("User tidak ditemukan")
	case errors.Is(err, auth.ErrInvalidResetToken):
		return response.BadRequest("Token tidak valid atau kedaluwarsa")
	case errors.Is(err, auth.ErrRegistrationClosed):
		return response.Forbidden("Registrasi publik dinonaktifkan")
	case errors.Is(err, auth.ErrWrongPassword):
		return response.BadRequest("Password lama salah")
	default:
		return err
	}
}
