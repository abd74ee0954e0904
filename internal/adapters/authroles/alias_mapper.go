package authroles

import (
	domainauth "github.com/medisys/reports-ui-api/internal/domain/auth"
)

// AliasRoleMapper maps group memberships by string membership against the
// known alias spellings per role. Precedence when several aliases match:
// administrator, then staff reviewer, then clinic submitter. A membership
// list with no recognized alias maps to clinic submitter.
type AliasRoleMapper struct {
	AdminAliases  []string
	StaffAliases  []string
	ClinicAliases []string
}

// NewDefaultMapper returns a mapper loaded with the directory's known alias
// spellings for each role.
func NewDefaultMapper() AliasRoleMapper {
	return AliasRoleMapper{
		AdminAliases:  domainauth.AdministratorAliases,
		StaffAliases:  domainauth.StaffReviewerAliases,
		ClinicAliases: domainauth.ClinicAliases,
	}
}

func (m AliasRoleMapper) Map(groups []string) domainauth.Role {
	if containsAny(groups, m.AdminAliases) {
		return domainauth.RoleAdministrator
	}
	if containsAny(groups, m.StaffAliases) {
		return domainauth.RoleStaffReviewer
	}
	// Clinic submitter is both an explicit alias match and the fallback.
	return domainauth.RoleClinicSubmitter
}

func containsAny(groups, aliases []string) bool {
	for _, g := range groups {
		for _, a := range aliases {
			if g == a {
				return true
			}
		}
	}
	return false
}
