package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/roxydental/roxydental_backend/internal/api/http/handler"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/pkg/authorize"
)

// registerDoctorRoutes mounts the clinical and finance routes under /api/doctor.
// The group already carries AuthRequired.
func (r *Router) registerDoctorRoutes(
	doctor fiber.Router,
	requirePerm permFunc,
	dh *handler.DashboardHandler,
	vh *handler.VisitHandler,
	ph *handler.PatientHandler,
	sh *handler.ScheduleHandler,
	lh *handler.LeaveHandler,
	ch *handler.CommissionHandler,
	svc *handler.CatalogHandler,
) {
	doctor.Get("/dashboard/summary", requirePerm(authorize.ResourceDashboard, authorize.ActionRead), dh.Summary)

	// Visits; /queue precedes /:id
	visits := doctor.Group("/visits")
	visits.Get("/", requirePerm(authorize.ResourceVisit, authorize.ActionList), vh.List)
	visits.Get("/queue", requirePerm(authorize.ResourceQueue, authorize.ActionRead), vh.Queue)
	visits.Get("/:id", requirePerm(authorize.ResourceVisit, authorize.ActionRead), vh.Get)
	visits.Post("/", requirePerm(authorize.ResourceVisit, authorize.ActionCreate), vh.Create)
	visits.Patch("/:id/status", requirePerm(authorize.ResourceVisit, authorize.ActionUpdate), vh.UpdateStatus)

	// Patients and treatment records
	patients := doctor.Group("/patients")
	patients.Get("/", requirePerm(authorize.ResourcePatient, authorize.ActionList), ph.List)
	patients.Get("/:id", requirePerm(authorize.ResourcePatient, authorize.ActionRead), ph.Get)
	patients.Get("/:id/records", requirePerm(authorize.ResourceTreatment, authorize.ActionRead), ph.Records)
	patients.Post("/:id/records", requirePerm(authorize.ResourceTreatment, authorize.ActionCreate), ph.CreateTreatment)

	// Schedules
	schedules := doctor.Group("/schedules")
	schedules.Get("/", requirePerm(authorize.ResourceSchedule, authorize.ActionList), sh.List)
	schedules.Post("/", requirePerm(authorize.ResourceSchedule, authorize.ActionCreate), sh.Create)
	schedules.Get("/activities", requirePerm(authorize.ResourceSchedule, authorize.ActionList), sh.Activities)
	schedules.Get("/meetings", requirePerm(authorize.ResourceSchedule, authorize.ActionList), sh.Meetings)

	// Leave
	leaves := doctor.Group("/leaves")
	leaves.Get("/", requirePerm(authorize.ResourceLeave, authorize.ActionList), lh.List)
	leaves.Post("/", requirePerm(authorize.ResourceLeave, authorize.ActionCreate), lh.Create)
	leaves.Patch("/:id/decision", requirePerm(authorize.ResourceLeave, authorize.ActionApprove), lh.Decide)

	// Commissions (DOKTER only)
	readCommission := requirePerm(authorize.ResourceCommission, authorize.ActionRead)
	commissions := doctor.Group("/finance/commissions", readCommission)
	commissions.Get("/summary", ch.Summary)
	commissions.Get("/services", ch.ByCategory(model.CategoryConsultation, "Komisi layanan berhasil diambil"))
	commissions.Get("/pharmacy", ch.ByCategory(model.CategoryPharmacy, "Komisi farmasi berhasil diambil"))
	commissions.Get("/packages", ch.ByCategory(model.CategoryOrthodontic, "Komisi paket berhasil diambil"))
	commissions.Get("/labs", ch.ByCategory(model.CategoryOther, "Komisi laboratorium berhasil diambil"))

	// Service catalog
	services := doctor.Group("/services")
	services.Get("/", requirePerm(authorize.ResourceService, authorize.ActionList), svc.List)
	services.Post("/", requirePerm(authorize.ResourceService, authorize.ActionCreate), svc.Create)
}
