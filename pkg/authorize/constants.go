package authorize

type Action string
type Resource string
type Role string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionList    Action = "list"
	ActionApprove Action = "approve"

	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionUpdate: {}, ActionDelete: {}, ActionList: {},
	ActionApprove: {},
}

// ----------------------------
// Resources
// ----------------------------

const (
	WildcardResource Resource = "*"

	ResourceUser       Resource = "user"
	ResourceProfile    Resource = "profile"
	ResourcePatient    Resource = "patient"
	ResourceVisit      Resource = "visit"
	ResourceQueue      Resource = "queue"
	ResourceTreatment  Resource = "treatment"
	ResourceService    Resource = "service_catalog"
	ResourceCommission Resource = "commission"
	ResourceDashboard  Resource = "dashboard"
	ResourceSchedule   Resource = "schedule"
	ResourceLeave      Resource = "leave"
	ResourcePayment    Resource = "payment"
	ResourceAssistant  Resource = "assistant"
)

var KnownResources = map[Resource]struct{}{
	ResourceUser: {}, ResourceProfile: {},
	ResourcePatient: {}, ResourceVisit: {}, ResourceQueue: {}, ResourceTreatment: {},
	ResourceService: {}, ResourceCommission: {}, ResourceDashboard: {},
	ResourceSchedule: {}, ResourceLeave: {}, ResourcePayment: {}, ResourceAssistant: {},
}

// ----------------------------
// Roles
// ----------------------------
//
// Policy subjects are the staff roles stored on users.role.

const (
	WildcardRole Role = "*"

	RoleDokter  Role = "DOKTER"
	RolePerawat Role = "PERAWAT"
)

var KnownRoles = map[Role]struct{}{
	RoleDokter:  {},
	RolePerawat: {},
}

// Indonesian display names
var RoleDisplayNamesID = map[Role]string{
	RoleDokter:  "Dokter",
	RolePerawat: "Perawat",
}

func IsValidRole(r Role) bool {
	_, ok := KnownRoles[r]
	return ok
}

// ----------------------------
// Casbin tuple helpers
// ----------------------------

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// Inheritance rows: g, child, parent
type InheritancePolicy struct {
	Child  Role
	Parent Role
}

// Permission rows: p, role, resource, action, eft
type PermissionPolicy struct {
	Subject Role
	Object  Resource
	Action  Action
	Effect  PolicyEffect
}
