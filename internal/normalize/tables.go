package normalize

import (
	"strconv"

	"github.com/medisys/reports-ui-api/internal/domain/model"
	"github.com/medisys/reports-ui-api/internal/ports"
)

// fieldRule binds one canonical field to its accepted alias expressions.
// Expressions are tried in order; the first non-empty value wins.
type fieldRule struct {
	exprs []string
	def   string
}

// Report record aliases. The API mixes PascalCase, SCREAMING_SNAKE, and
// camelCase depending on which backing table a record came from.
var (
	reportID = fieldRule{
		exprs: []string{"ReportId", `"REPORT_ID"`, "id", "reportId"},
	}
	reportPatientID = fieldRule{
		exprs: []string{"PatientId", `"PATIENT_ID"`, "patientId"},
	}
	reportPatientName = fieldRule{
		exprs: []string{
			`join(' ', ["PATIENTFIRSTNAME", "PATIENTLASTNAME"])`,
			"patientName",
			"PatientName",
			"PatientId",
			`"PATIENT_ID"`,
			"patientId",
		},
		def: "—",
	}
	reportDiagnosticType = fieldRule{
		exprs: []string{"DiagnosticType", `"DIAGNOSTIC_TYPE"`, "diagnosticType", "type"},
		def:   "Unknown",
	}
	reportDiagnosis = fieldRule{
		exprs: []string{"Diagnosis", `"DIAGNOSIS"`, "diagnosis", "result"},
		def:   "Unknown",
	}
	reportBloodType = fieldRule{
		exprs: []string{"BloodType", `"BLOOD_TYPE"`, "bloodType"},
		def:   "—",
	}
	reportGender = fieldRule{
		exprs: []string{"Gender", `"GENDER"`, "gender"},
		def:   "—",
	}
	reportDateOfBirth = fieldRule{
		exprs: []string{"DateOfBirth", `"DOB"`, "dateOfBirth", "dob"},
		def:   "—",
	}
	reportLastChecked = fieldRule{
		exprs: []string{"LastChecked", `"LAST_CHECKED"`, "lastChecked", "lastCheckedAt"},
		def:   "-",
	}
	reportSubmittedAt = fieldRule{
		exprs: []string{"SubmittedAt", `"SUBMITTED_AT"`, "submittedAt", "createdAt", "CreatedAt"},
		def:   "-",
	}
	reportClinicID = fieldRule{
		exprs: []string{"clinicId", "ClinicId", `"custom:clinic_id"`},
	}
	reportStatus = fieldRule{
		exprs: []string{"status", "Status"},
	}
)

// reportRules collects every report rule for table validation.
var reportRules = []fieldRule{
	reportID, reportPatientID, reportPatientName, reportDiagnosticType,
	reportDiagnosis, reportBloodType, reportGender, reportDateOfBirth,
	reportLastChecked, reportSubmittedAt, reportClinicID, reportStatus,
}

// User record aliases. Directory records arrive either flat or in the
// identity provider's Attributes name/value list shape, which is flattened
// before resolution.
var (
	userDisplayName = fieldRule{
		exprs: []string{"name", "Name", "Username", "username", "email", "Email"},
		def:   "N/A",
	}
	userEmail = fieldRule{
		exprs: []string{"email", "Email"},
	}
	userRole = fieldRule{
		exprs: []string{"role", "Role", `"custom:role"`},
	}
	userClinicID = fieldRule{
		exprs: []string{"clinicId", "ClinicId", `"custom:clinic_id"`},
	}
	userCreatedAt = fieldRule{
		exprs: []string{"createdAt", "CreatedAt", "UserCreateDate"},
		def:   "-",
	}
)

var userRules = []fieldRule{
	userDisplayName, userEmail, userRole, userClinicID, userCreatedAt,
}

// Dashboard aggregate aliases.
var (
	statTotalReports = fieldRule{
		exprs: []string{"totalReports", "TotalReports", `"TOTAL_REPORTS"`, "total"},
	}
	statPendingReports = fieldRule{
		exprs: []string{"pendingReports", "PendingReports", `"PENDING_REPORTS"`, "pending"},
	}
	statApprovedReports = fieldRule{
		exprs: []string{"approvedReports", "ApprovedReports", `"APPROVED_REPORTS"`, "approved"},
	}
	statRejectedReports = fieldRule{
		exprs: []string{"rejectedReports", "RejectedReports", `"REJECTED_REPORTS"`, "rejected"},
	}
	statTotalClinics = fieldRule{
		exprs: []string{"totalClinics", "TotalClinics", `"TOTAL_CLINICS"`},
	}
	statTotalUsers = fieldRule{
		exprs: []string{"totalUsers", "TotalUsers", `"TOTAL_USERS"`},
	}
)

var dashboardRules = []fieldRule{
	statTotalReports, statPendingReports, statApprovedReports,
	statRejectedReports, statTotalClinics, statTotalUsers,
}

// Report normalizes a single raw report record. The index is the record's
// position in its list and backs the report id default.
func (n *Normalizer) Report(rec ports.RawRecord, index int) model.Report {
	id := n.resolve(rec, reportID)
	if id == "" {
		id = strconv.Itoa(index)
	}
	return model.Report{
		ID:             id,
		PatientID:      n.resolve(rec, reportPatientID),
		PatientName:    n.resolve(rec, reportPatientName),
		DiagnosticType: n.resolve(rec, reportDiagnosticType),
		Diagnosis:      n.resolve(rec, reportDiagnosis),
		BloodType:      n.resolve(rec, reportBloodType),
		Gender:         n.resolve(rec, reportGender),
		DateOfBirth:    n.resolve(rec, reportDateOfBirth),
		LastChecked:    n.resolve(rec, reportLastChecked),
		SubmittedAt:    n.resolve(rec, reportSubmittedAt),
		ClinicID:       n.resolve(rec, reportClinicID),
		Status:         model.ParseReportStatus(n.resolve(rec, reportStatus)),
	}
}

// Reports normalizes a list of raw report records.
func (n *Normalizer) Reports(recs []ports.RawRecord) []model.Report {
	out := make([]model.Report, 0, len(recs))
	for i, rec := range recs {
		out = append(out, n.Report(rec, i))
	}
	return out
}

// User normalizes a single raw user record.
func (n *Normalizer) User(rec ports.RawRecord) model.User {
	flat := flattenAttributes(rec)
	return model.User{
		DisplayName: n.resolve(flat, userDisplayName),
		Email:       n.resolve(flat, userEmail),
		Role:        n.resolve(flat, userRole),
		ClinicID:    n.resolve(flat, userClinicID),
		CreatedAt:   n.resolve(flat, userCreatedAt),
	}
}

// Users normalizes a list of raw user records.
func (n *Normalizer) Users(recs []ports.RawRecord) []model.User {
	out := make([]model.User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, n.User(rec))
	}
	return out
}

// Dashboard normalizes the dashboard aggregate record.
func (n *Normalizer) Dashboard(rec ports.RawRecord) model.DashboardStats {
	return model.DashboardStats{
		TotalReports:    n.resolveInt(rec, statTotalReports),
		PendingReports:  n.resolveInt(rec, statPendingReports),
		ApprovedReports: n.resolveInt(rec, statApprovedReports),
		RejectedReports: n.resolveInt(rec, statRejectedReports),
		TotalClinics:    n.resolveInt(rec, statTotalClinics),
		TotalUsers:      n.resolveInt(rec, statTotalUsers),
	}
}

// flattenAttributes merges an identity-directory Attributes name/value list
// into a flat copy of the record. Flat keys already present win.
func flattenAttributes(rec ports.RawRecord) ports.RawRecord {
	attrs, ok := rec["Attributes"].([]any)
	if !ok {
		if attrs, ok = rec["attributes"].([]any); !ok {
			return rec
		}
	}
	flat := make(ports.RawRecord, len(rec)+len(attrs))
	for k, v := range rec {
		flat[k] = v
	}
	for _, a := range attrs {
		pair, ok := a.(map[string]any)
		if !ok {
			continue
		}
		name, _ := pair["Name"].(string)
		if name == "" {
			continue
		}
		if _, exists := flat[name]; !exists {
			flat[name] = pair["Value"]
		}
	}
	return flat
}
