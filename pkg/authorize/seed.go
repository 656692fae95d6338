package authorize

import (
	"context"
	"log/slog"
)

// DefaultInheritance makes DOKTER a superset of PERAWAT.
func DefaultInheritance() []InheritancePolicy {
	return []InheritancePolicy{
		{Child: RoleDokter, Parent: RolePerawat},
	}
}

// DefaultPolicies is the baseline clinic permission set.
func DefaultPolicies() []PermissionPolicy {
	return []PermissionPolicy{
		// Front desk and clinical work shared by all staff.
		{RolePerawat, ResourcePatient, ActionList, EffectAllow},
		{RolePerawat, ResourcePatient, ActionRead, EffectAllow},
		{RolePerawat, ResourcePatient, ActionCreate, EffectAllow},
		{RolePerawat, ResourceVisit, ActionList, EffectAllow},
		{RolePerawat, ResourceVisit, ActionRead, EffectAllow},
		{RolePerawat, ResourceVisit, ActionCreate, EffectAllow},
		{RolePerawat, ResourceVisit, ActionUpdate, EffectAllow},
		{RolePerawat, ResourceQueue, ActionRead, EffectAllow},
		{RolePerawat, ResourceTreatment, ActionRead, EffectAllow},
		{RolePerawat, ResourceTreatment, ActionCreate, EffectAllow},
		{RolePerawat, ResourceService, ActionList, EffectAllow},
		{RolePerawat, ResourceSchedule, ActionList, EffectAllow},
		{RolePerawat, ResourceSchedule, ActionCreate, EffectAllow},
		{RolePerawat, ResourceLeave, ActionList, EffectAllow},
		{RolePerawat, ResourceLeave, ActionCreate, EffectAllow},
		{RolePerawat, ResourcePayment, ActionCreate, EffectAllow},
		{RolePerawat, ResourcePayment, ActionRead, EffectAllow},
		{RolePerawat, ResourcePayment, ActionList, EffectAllow},
		{RolePerawat, ResourceProfile, ActionRead, EffectAllow},
		{RolePerawat, ResourceProfile, ActionUpdate, EffectAllow},
		{RolePerawat, ResourceAssistant, ActionRead, EffectAllow},

		// Doctor-only administration and finance.
		{RoleDokter, ResourceUser, WildcardAction, EffectAllow},
		{RoleDokter, ResourceCommission, ActionRead, EffectAllow},
		{RoleDokter, ResourceDashboard, ActionRead, EffectAllow},
		{RoleDokter, ResourceLeave, ActionApprove, EffectAllow},
		{RoleDokter, ResourceService, ActionCreate, EffectAllow},
	}
}

// SeedDefaultPolicies sets up the baseline RBAC policies. It is idempotent.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization) error {
	logger := slog.Default()

	for _, g := range DefaultInheritance() {
		if _, err := auth.AddInheritance(ctx, g.Child, g.Parent); err != nil {
			logger.Error("failed to add role inheritance", "child", g.Child, "parent", g.Parent, "error", err)
			return err
		}
	}

	policies := DefaultPolicies()
	for _, p := range policies {
		added, err := auth.AddPermission(ctx, p.Subject, p.Object, p.Action, p.Effect)
		if err != nil {
			logger.Error("failed to add policy", "policy", p, "error", err)
			return err
		}
		if added {
			logger.Debug("added policy", "role", p.Subject, "resource", p.Object, "action", p.Action)
		}
	}

	logger.Info("seeded default RBAC policies", "count", len(policies))
	return nil
}
