package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/roxydental/roxydental_backend/internal/api/http/response"
	"github.com/roxydental/roxydental_backend/internal/service/nurseprofile"
)

const maxPhotoBytes = 2 << 20

type NurseProfileHandler struct {
	svc nurseprofile.Service
	loc *time.Location
}

func NewNurseProfileHandler(svc nurseprofile.Service, loc *time.Location) *NurseProfileHandler {
	return &NurseProfileHandler{svc: svc, loc: loc}
}

// GET /api/nurse/profile
func (h *NurseProfileHandler) Profile(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	u, err := h.svc.Profile(c.Context(), uid)
	if err != nil {
		return mapNurseProfileError(err)
	}
	return response.OK(c, "Profil berhasil diambil", u)
}

// PUT /api/nurse/profile
func (h *NurseProfileHandler) Update(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	var body struct {
		FullName       *string `json:"fullName" validate:"omitempty,min=3"`
		Email          *string `json:"email" validate:"omitempty,email"`
		Phone          *string `json:"phone" validate:"omitempty,min=10,phone"`
		Specialization *string `json:"specialization"`
		Education      *string `json:"education"`
		Experience     *string `json:"experience"`
		SIPNumber      *string `json:"sipNumber"`
		SIPStartDate   *string `json:"sipStartDate" validate:"omitempty,isodate"`
		SIPEndDate     *string `json:"sipEndDate" validate:"omitempty,isodate"`
	}
	if err := bind(c, &body); err != nil {
		return err
	}

	req := nurseprofile.UpdateRequest{
		FullName:       body.FullName,
		Email:          body.Email,
		Phone:          body.Phone,
		Specialization: body.Specialization,
		Education:      body.Education,
		Experience:     body.Experience,
		SIPNumber:      body.SIPNumber,
	}
	if req.SIPStartDate, err = parseOptionalTime("sipStartDate", body.SIPStartDate, h.loc); err != nil {
		return err
	}
	if req.SIPEndDate, err = parseOptionalTime("sipEndDate", body.SIPEndDate, h.loc); err != nil {
		return err
	}

	u, err := h.svc.UpdateProfile(c.Context(), uid, req)
	if err != nil {
		return mapNurseProfileError(err)
	}
	return response.OK(c, "Profil berhasil diperbarui", u)
}

// POST /api/nurse/profile/photo (multipart field "photo")
func (h *NurseProfileHandler) UploadPhoto(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return response.BadRequest("File foto wajib diunggah")
	}
	if fh.Size > maxPhotoBytes {
		return response.BadRequest("Ukuran foto maksimal 2 MB")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	u, err := h.svc.UploadPhoto(c.Context(), uid, nurseprofile.Photo{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return mapNurseProfileError(err)
	}
	return response.OK(c, "Foto profil berhasil diunggah", u)
}

// GET /api/nurse/profile/completion
func (h *NurseProfileHandler) Completion(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	out, err := h.svc.Completion(c.Context(), uid)
	if err != nil {
		return mapNurseProfileError(err)
	}
	return response.OK(c, "Kelengkapan profil berhasil diambil", out)
}

// GET /api/nurse/profile/shift-status
func (h *NurseProfileHandler) ShiftStatus(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	out, err := h.svc.ShiftStatus(c.Context(), uid)
	if err != nil {
		return mapNurseProfileError(err)
	}
	return response.OK(c, "Status shift berhasil diambil", out)
}

// GET /api/nurse/profile/account-status
func (h *NurseProfileHandler) AccountStatus(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	out, err := h.svc.AccountStatus(c.Context(), uid)
	if err != nil {
		return mapNurseProfileError(err)
	}
	return response.OK(c, "Status akun berhasil diambil", out)
}

// GET /api/nurse/profile/license
func (h *NurseProfileHandler) LicenseInfo(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	out, err := h.svc.LicenseInfo(c.Context(), uid)
	if err != nil {
		return mapNurseProfileError(err)
	}
	return response.OK(c, "Informasi SIP berhasil diambil", out)
}

// GET /api/nurse/profile/schedule
func (h *NurseProfileHandler) WeeklySchedule(c fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	out, err := h.svc.WeeklySchedule(c.Context(), uid)
	if err != nil {
		return mapNurseProfileError(err)
	}
	return response.OK(c, "Jadwal mingguan berhasil diambil", out)
}

func mapNurseProfileError(err error) error {
	switch {
	case errors.Is(err, nurseprofile.ErrUserNotFound):
		return response.NotFound("User tidak ditemukan")
	case errors.Is(err, nurseprofile.ErrEmailTaken):
		return response.BadRequest("Email sudah digunakan")
	case errors.Is(err, nurseprofile.ErrInvalidPhoto):
		return response.BadRequest("Foto harus berformat JPEG, PNG atau WebP")
	case errors.Is(err, nurseprofile.ErrPhotoUnavailable):
		return response.Fail(fiber.StatusServiceUnavailable, "Penyimpanan foto belum dikonfigurasi")
	default:
		return err
	}
}
