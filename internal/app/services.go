package app

import (
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/config"
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
	"github.com/roxydental/roxydental_backend/pkg/aiclient"
	"github.com/roxydental/roxydental_backend/pkg/email"
	"github.com/roxydental/roxydental_backend/pkg/midtrans"
	"github.com/roxydental/roxydental_backend/pkg/observability"
	redispkg "github.com/roxydental/roxydental_backend/pkg/redis"
	s3pkg "github.com/roxydental/roxydental_backend/pkg/s3"
	"github.com/roxydental/roxydental_backend/pkg/token"
	"github.com/roxydental/roxydental_backend/pkg/util/codes"
	"github.com/roxydental/roxydental_backend/pkg/util/password"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideAuthService,
		ProvideVisitService,
		ProvidePatientService,
		ProvideCommissionService,
		ProvideDashboardService,
		ProvideSchedulingService,
		ProvideLeaveService,
		ProvideUserService,
		ProvideNurseProfileService,
		ProvidePaymentService,
		ProvideCatalogService,
		ProvideAssistantService,
	),
)

type authParams struct {
	fx.In

	Cfg    *config.Config
	DB     *gorm.DB
	Tokens *token.Manager
	Hasher *password.Hasher
	KV     *redispkg.KV
	Mailer email.Sender
	Codes  *codes.Generator
}

func ProvideAuthService(p authParams) auth.Service {
	return auth.New(p.DB, p.Tokens, p.Hasher, p.KV, p.Mailer, p.Codes, auth.FromCentralConfig(p.Cfg.Authentication))
}

func ProvideVisitService(db *gorm.DB, loc *time.Location, metrics *observability.ClinicMetrics) visit.Service {
	return visit.New(db, loc, metrics)
}

func ProvidePatientService(db *gorm.DB, loc *time.Location, metrics *observability.ClinicMetrics) patient.Service {
	return patient.New(db, loc, metrics)
}

func ProvideCommissionService(db *gorm.DB, loc *time.Location) commission.Service {
	return commission.New(db, loc)
}

func ProvideDashboardService(db *gorm.DB, loc *time.Location) dashboard.Service {
	return dashboard.New(db, loc)
}

func ProvideSchedulingService(db *gorm.DB) scheduling.Service {
	return scheduling.New(db)
}

func ProvideLeaveService(db *gorm.DB) leave.Service {
	return leave.New(db)
}

func ProvideUserService(db *gorm.DB, hasher *password.Hasher) user.Service {
	return user.New(db, hasher)
}

func ProvideNurseProfileService(db *gorm.DB, store s3pkg.ObjectStore, loc *time.Location) nurseprofile.Service {
	return nurseprofile.New(db, store, loc)
}

func ProvidePaymentService(
	db *gorm.DB,
	gateway midtrans.Gateway,
	cfg *config.Config,
	loc *time.Location,
	metrics *observability.ClinicMetrics,
) payment.Service {
	return payment.New(db, gateway, cfg.Midtrans.ServerKey, loc, metrics)
}

func ProvideCatalogService(db *gorm.DB) catalog.Service {
	return catalog.New(db)
}

func ProvideAssistantService(client *aiclient.Client) assistant.Service {
	return assistant.New(client)
}
