package auth

// Group alias spellings recognized per role. The IdP directory has grown
// several spellings for the same group over time; membership tests are
// case-sensitive and every listed spelling maps to the same role.
var (
	AdministratorAliases = []string{"MedisysAdmin", "MedSysAdmin", "Admin"}
	StaffReviewerAliases = []string{"MedisysStaff", "MedSysStaff", "Staff"}
	ClinicAliases        = []string{"ClinicStaff", "ClinicUser"}
)

// RoleForAlias resolves a single group alias to its role.
// Returns false when the alias is not a recognized spelling.
func RoleForAlias(alias string) (Role, bool) {
	for _, a := range AdministratorAliases {
		if alias == a {
			return RoleAdministrator, true
		}
	}
	for _, a := range StaffReviewerAliases {
		if alias == a {
			return RoleStaffReviewer, true
		}
	}
	for _, a := range ClinicAliases {
		if alias == a {
			return RoleClinicSubmitter, true
		}
	}
	return "", false
}
