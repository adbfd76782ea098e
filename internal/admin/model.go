package admin

// Stats is the dashboard envelope: cross-entity totals, recent activity and
// per-bucket breakdowns.
type Stats struct {
	Overview struct {
		TotalUsers        int `json:"totalUsers"`
		TotalCompanies    int `json:"totalCompanies"`
		TotalJobs         int `json:"totalJobs"`
		TotalApplications int `json:"totalApplications"`
	} `json:"overview"`
	RecentActivity struct {
		NewUsers        int `json:"newUsers"`
		NewJobs         int `json:"newJobs"`
		NewApplications int `json:"newApplications"`
	} `json:"recentActivity"`
	UsersByRole          []RoleCount   `json:"usersByRole"`
	JobsByStatus         []StatusCount `json:"jobsByStatus"`
	JobsByType           []TypeCount   `json:"jobsByType"`
	ApplicationsByStatus []StatusCount `json:"applicationsByStatus"`
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type TypeCount struct {
	Type  string `json:"jobType"`
	Count int    `json:"count"`
}
