package auth

// Capability tags a navigational or functional surface of the application.
// The capability table below is the single source of truth for what each
// role may reach; routing middleware and the /auth/status payload both
// consume it, and nothing else in the codebase re-derives permissions.
type Capability string

const (
	CapDashboard       Capability = "dashboard"
	CapOwnReports      Capability = "own_reports"
	CapApprovedReports Capability = "approved_reports"
	CapAllReports      Capability = "all_reports"
	CapUpload          Capability = "upload"
	CapUserManagement  Capability = "user_management"
)

// capabilityTable is the fixed role-to-capability mapping.
// A (role, capability) pair absent from this table is denied.
var capabilityTable = map[Role][]Capability{
	RoleAdministrator:   {CapDashboard, CapAllReports, CapUserManagement},
	RoleStaffReviewer:   {CapDashboard, CapApprovedReports},
	RoleClinicSubmitter: {CapDashboard, CapOwnReports, CapUpload},
}

// AllowedCapabilities returns the set of capabilities the role may reach.
// The returned slice is a copy; callers may not mutate the table through it.
func AllowedCapabilities(role Role) []Capability {
	caps, ok := capabilityTable[role]
	if !ok {
		return nil
	}
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

// Allowed reports whether the role may reach the given capability.
func Allowed(role Role, cap Capability) bool {
	for _, c := range capabilityTable[role] {
		if c == cap {
			return true
		}
	}
	return false
}

// CanReview reports whether the role may approve, reject, or delete reports.
func CanReview(role Role) bool { return Allowed(role, CapAllReports) }

// CanManageUsers reports whether the role may create or delete user accounts.
func CanManageUsers(role Role) bool { return Allowed(role, CapUserManagement) }

// CanUpload reports whether the role may submit new report files.
func CanUpload(role Role) bool { return Allowed(role, CapUpload) }
