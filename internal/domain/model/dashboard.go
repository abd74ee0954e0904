package model

// DashboardStats is the canonical projection of the dashboard aggregate
// buckets returned by the reports API.
type DashboardStats struct {
	TotalReports    int `json:"total_reports"`
	PendingReports  int `json:"pending_reports"`
	ApprovedReports int `json:"approved_reports"`
	RejectedReports int `json:"rejected_reports"`
	TotalClinics    int `json:"total_clinics"`
	TotalUsers      int `json:"total_users"`
}
