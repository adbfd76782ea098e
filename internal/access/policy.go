// Package access holds the pure role/route/action policy tables. Nothing in
// here performs I/O; screens and services consult these functions and the
// backend remains the final authority.
package access

import "sort"

type Role string

const (
	// RoleAnonymous is the zero role of an unauthenticated visitor.
	RoleAnonymous Role = ""
	RoleApplicant Role = "applicant"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is a role the backend can issue.
func ValidRole(r Role) bool {
	return r == RoleApplicant || r == RoleEmployer || r == RoleAdmin
}

// RegistrableRole reports whether a visitor may self-register as r. Admin
// accounts are provisioned out of band.
func RegistrableRole(r Role) bool {
	return r == RoleApplicant || r == RoleEmployer
}

type Route string

const (
	RouteHome                 Route = "/"
	RouteLogin                Route = "/login"
	RouteRegister             Route = "/register"
	RouteResetPassword        Route = "/reset-password"
	RouteJobs                 Route = "/jobs"
	RouteJobDetails           Route = "/jobs/:id"
	RouteCompanies            Route = "/companies"
	RouteCompanyDetails       Route = "/companies/:id"
	RouteProfile              Route = "/profile"
	RouteMyApplications       Route = "/my-applications"
	RouteMyCompanies          Route = "/my-companies"
	RouteMyJobs               Route = "/my-jobs"
	RouteEmployerApplications Route = "/employer/applications"
	RouteAdmin                Route = "/admin"
	RouteAdminUsers           Route = "/admin/users"
	RouteAdminCompanies       Route = "/admin/companies"
	RouteAdminJobs            Route = "/admin/jobs"
	RouteAdminApplications    Route = "/admin/applications"
)

// routeRoles lists which roles may view each route. Public routes carry nil.
// Authenticated-only routes list every permitted role explicitly so the
// table can be enumerated in tests.
var routeRoles = map[Route][]Role{
	RouteHome:                 nil,
	RouteLogin:                nil,
	RouteRegister:             nil,
	RouteResetPassword:        nil,
	RouteJobs:                 nil,
	RouteJobDetails:           nil,
	RouteCompanies:            nil,
	RouteCompanyDetails:       nil,
	RouteProfile:              {RoleApplicant, RoleEmployer, RoleAdmin},
	RouteMyApplications:       {RoleApplicant},
	RouteMyCompanies:          {RoleEmployer, RoleAdmin},
	RouteMyJobs:               {RoleEmployer, RoleAdmin},
	RouteEmployerApplications: {RoleEmployer, RoleAdmin},
	RouteAdmin:                {RoleAdmin},
	RouteAdminUsers:           {RoleAdmin},
	RouteAdminCompanies:       {RoleAdmin},
	RouteAdminJobs:            {RoleAdmin},
	RouteAdminApplications:    {RoleAdmin},
}

// CanViewRoute reports whether a visitor with the given role may see route.
// Unknown routes are never visible.
func CanViewRoute(role Role, route Route) bool {
	allowed, ok := routeRoles[route]
	if !ok {
		return false
	}
	if allowed == nil {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Routes returns every known route in stable order.
func Routes() []Route {
	out := make([]Route, 0, len(routeRoles))
	for r := range routeRoles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CanMutate is the ownership gate for employer-owned resources: admins may
// always mutate, everyone else only what they own.
func CanMutate(role Role, resourceOwnerID, actorID string) bool {
	if role == RoleAdmin {
		return true
	}
	return actorID != "" && actorID == resourceOwnerID
}

// Action names a user-visible operation gated by role. Ownership, where it
// applies, is checked separately with CanMutate.
type Action string

const (
	ActionApplyToJob            Action = "apply_to_job"
	ActionWithdrawApplication   Action = "withdraw_application"
	ActionViewOwnApplications   Action = "view_own_applications"
	ActionManageCompanies       Action = "manage_companies"
	ActionManageJobs            Action = "manage_jobs"
	ActionReviewApplications    Action = "review_applications"
	ActionTransitionApplication Action = "transition_application"
	ActionManageUsers           Action = "manage_users"
	ActionViewAdminDashboard    Action = "view_admin_dashboard"
)

var roleActions = map[Role]map[Action]bool{
	RoleApplicant: {
		ActionApplyToJob:          true,
		ActionWithdrawApplication: true,
		ActionViewOwnApplications: true,
	},
	RoleEmployer: {
		ActionManageCompanies:       true,
		ActionManageJobs:            true,
		ActionReviewApplications:    true,
		ActionTransitionApplication: true,
	},
	RoleAdmin: {
		ActionManageCompanies:       true,
		ActionManageJobs:            true,
		ActionReviewApplications:    true,
		ActionTransitionApplication: true,
		ActionManageUsers:           true,
		ActionViewAdminDashboard:    true,
	},
}

// Allowed reports whether the role may perform the action at all.
func Allowed(role Role, action Action) bool {
	return roleActions[role][action]
}
