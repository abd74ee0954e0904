package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedCapabilities_PerRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected []Capability
	}{
		{
			name:     "administrator",
			role:     RoleAdministrator,
			expected: []Capability{CapDashboard, CapAllReports, CapUserManagement},
		},
		{
			name:     "staff reviewer",
			role:     RoleStaffReviewer,
			expected: []Capability{CapDashboard, CapApprovedReports},
		},
		{
			name:     "clinic submitter",
			role:     RoleClinicSubmitter,
			expected: []Capability{CapDashboard, CapOwnReports, CapUpload},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AllowedCapabilities(tt.role))
		})
	}
}

func TestAllowedCapabilities_UnknownRole(t *testing.T) {
	assert.Nil(t, AllowedCapabilities(Role("intern")))
}

func TestAllowedCapabilities_ReturnsCopy(t *testing.T) {
	caps := AllowedCapabilities(RoleAdministrator)
	caps[0] = Capability("mutated")

	assert.Equal(t, CapDashboard, AllowedCapabilities(RoleAdministrator)[0])
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		capability Capability
		expected   bool
	}{
		{"admin reaches user management", RoleAdministrator, CapUserManagement, true},
		{"admin reaches all reports", RoleAdministrator, CapAllReports, true},
		{"admin does not reach own reports", RoleAdministrator, CapOwnReports, false},
		{"admin does not reach upload", RoleAdministrator, CapUpload, false},
		{"staff reaches approved reports", RoleStaffReviewer, CapApprovedReports, true},
		{"staff does not reach all reports", RoleStaffReviewer, CapAllReports, false},
		{"staff does not reach user management", RoleStaffReviewer, CapUserManagement, false},
		{"clinic reaches upload", RoleClinicSubmitter, CapUpload, true},
		{"clinic reaches own reports", RoleClinicSubmitter, CapOwnReports, true},
		{"clinic does not reach approved reports", RoleClinicSubmitter, CapApprovedReports, false},
		{"every role reaches dashboard", RoleStaffReviewer, CapDashboard, true},
		{"unknown role reaches nothing", Role("intern"), CapDashboard, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Allowed(tt.role, tt.capability))
		})
	}
}

func TestCapabilityShortcuts(t *testing.T) {
	assert.True(t, CanReview(RoleAdministrator))
	assert.False(t, CanReview(RoleStaffReviewer))
	assert.False(t, CanReview(RoleClinicSubmitter))

	assert.True(t, CanManageUsers(RoleAdministrator))
	assert.False(t, CanManageUsers(RoleStaffReviewer))

	assert.True(t, CanUpload(RoleClinicSubmitter))
	assert.False(t, CanUpload(RoleAdministrator))
}

func TestSession_RolePredicates(t *testing.T) {
	assert.True(t, Session{Role: RoleAdministrator}.IsAdministrator())
	assert.False(t, Session{Role: RoleStaffReviewer}.IsAdministrator())
	assert.True(t, Session{Role: RoleClinicSubmitter}.IsClinicSubmitter())
	assert.False(t, Session{Role: RoleAdministrator}.IsClinicSubmitter())
}
