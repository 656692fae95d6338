package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/roxydental/roxydental_backend/internal/api/http/handler"
	"github.com/roxydental/roxydental_backend/pkg/authorize"
)

func (r *Router) registerUserRoutes(api fiber.Router, h *handler.UserHandler, authRequired fiber.Handler, requirePerm permFunc) {
	users := api.Group("/users", authRequired)

	// /profile must be registered before /:id; every staff member manages their own.
	users.Get("/profile", requirePerm(authorize.ResourceProfile, authorize.ActionRead), h.Profile)
	users.Put("/profile", requirePerm(authorize.ResourceProfile, authorize.ActionUpdate), h.UpdateProfile)

	users.Get("/", requirePerm(authorize.ResourceUser, authorize.ActionList), h.List)
	users.Post("/", requirePerm(authorize.ResourceUser, authorize.ActionCreate), h.Create)
	users.Get("/:id", requirePerm(authorize.ResourceUser, authorize.ActionRead), h.Get)
	users.Put("/:id", requirePerm(authorize.ResourceUser, authorize.ActionUpdate), h.Update)
	users.Delete("/:id", requirePerm(authorize.ResourceUser, authorize.ActionDelete), h.Delete)
	users.Patch("/:id/toggle-status", requirePerm(authorize.ResourceUser, authorize.ActionUpdate), h.ToggleStatus)
}

func (r *Router) registerNurseRoutes(api fiber.Router, h *handler.NurseProfileHandler, authRequired fiber.Handler, requirePerm permFunc) {
	profile := api.Group("/nurse/profile", authRequired)
	read := requirePerm(authorize.ResourceProfile, authorize.ActionRead)
	update := requirePerm(authorize.ResourceProfile, authorize.ActionUpdate)

	profile.Get("/", read, h.Profile)
	profile.Put("/", update, h.Update)
	profile.Post("/photo", update, h.UploadPhoto)
	profile.Get("/completion", read, h.Completion)
	profile.Get("/shift-status", read, h.ShiftStatus)
	profile.Get("/account-status", read, h.AccountStatus)
	profile.Get("/license", read, h.LicenseInfo)
	profile.Get("/schedule", read, h.WeeklySchedule)
}
