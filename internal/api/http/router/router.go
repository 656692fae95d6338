package router

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/config"
	"github.com/roxydental/roxydental_backend/internal/api/http/handler"
	"github.com/roxydental/roxydental_backend/internal/api/http/middleware"
	"github.com/roxydental/roxydental_backend/internal/service/assistant"
	"github.com/roxydental/roxydental_backend/internal/service/auth"
	"github.com/roxydental/roxydental_backend/internal/service/catalog"
	"github.com/roxydental/roxydental_backend/internal/service/commission"
	"github.com/roxydental/roxydental_backend/internal/service/dashboard"
	"github.com/roxydental/roxydental_backend/internal/service/leave"
	"github.com/roxydental/roxydental_backend/internal/service/nurseprofile"
	"github.com/roxydental/roxydental_backend/internal/service/patient"
	"github.com/roxydental/roxydental_backend/internal/service/payment"
	"github.com/roxydental/roxydental_backend/internal/service/scheduling"
	"github.com/roxydental/roxydental_backend/internal/service/user"
	"github.com/roxydental/roxydental_backend/internal/service/visit"
	"github.com/roxydental/roxydental_backend/pkg/authorize"
	"github.com/roxydental/roxydental_backend/pkg/database"
	"github.com/roxydental/roxydental_backend/pkg/token"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg      *config.Config
	DB       *gorm.DB
	Location *time.Location
	Auth     authorize.IAuthorization
	Tokens   *token.Manager

	AuthSvc         auth.Service
	VisitSvc        visit.Service
	PatientSvc      patient.Service
	CommissionSvc   commission.Service
	DashboardSvc    dashboard.Service
	SchedulingSvc   scheduling.Service
	LeaveSvc        leave.Service
	UserSvc         user.Service
	NurseProfileSvc nurseprofile.Service
	PaymentSvc      payment.Service
	CatalogSvc      catalog.Service
	AssistantSvc    assistant.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

type permFunc func(authorize.Resource, authorize.Action) fiber.Handler

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Middlewares
	authRequired := middleware.AuthRequired(r.p.Tokens, r.p.AuthSvc, r.p.DB)
	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, res, act)
	}

	// 3. Handlers
	authH := handler.NewAuthHandler(r.p.AuthSvc)
	visitH := handler.NewVisitHandler(r.p.VisitSvc, r.p.Location)
	patientH := handler.NewPatientHandler(r.p.PatientSvc)
	commissionH := handler.NewCommissionHandler(r.p.CommissionSvc)
	dashboardH := handler.NewDashboardHandler(r.p.DashboardSvc)
	scheduleH := handler.NewScheduleHandler(r.p.SchedulingSvc, r.p.Location)
	leaveH := handler.NewLeaveHandler(r.p.LeaveSvc, r.p.Location)
	userH := handler.NewUserHandler(r.p.UserSvc)
	nurseH := handler.NewNurseProfileHandler(r.p.NurseProfileSvc, r.p.Location)
	paymentH := handler.NewPaymentHandler(r.p.PaymentSvc)
	catalogH := handler.NewCatalogHandler(r.p.CatalogSvc)
	assistantH := handler.NewAssistantHandler(r.p.AssistantSvc)

	api := app.Group("/api")

	// 4. Delegate to sub-files
	r.registerAuthRoutes(api, authH, authRequired)
	r.registerDoctorRoutes(api.Group("/doctor", authRequired), requirePerm,
		dashboardH, visitH, patientH, scheduleH, leaveH, commissionH, catalogH)
	r.registerUserRoutes(api, userH, authRequired, requirePerm)
	r.registerNurseRoutes(api, nurseH, authRequired, requirePerm)
	r.registerPaymentRoutes(api, paymentH, authRequired, requirePerm)
	r.registerAssistantRoutes(api, assistantH, authRequired, requirePerm)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get("/health", handler.Health)
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			if database.Ping(c.Context(), r.p.DB) != nil {
				return false
			}
			return !r.p.Cfg.Authorization.HealthCheckEnabled || authorize.IsPolicyHealthy()
		},
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
