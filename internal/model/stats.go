package model

// Age bucket labels, in display order. Boundary ages belong to the lower
// bucket: 20 falls in "0-20", 21 in "21-40".
var AgeBuckets = []string{"0-20", "21-40", "41-60", "61+"}

// DashboardStats holds the headline aggregates shown on the dashboard.
// AverageGFR over an empty collection is 0 by definition, not an error.
type DashboardStats struct {
	TotalPatients    int     `json:"total_patients"`
	CriticalPatients int     `json:"critical_patients"`
	StablePatients   int     `json:"stable_patients"`
	AverageGFR       float64 `json:"average_gfr"`
	UpcomingVisits   int     `json:"upcoming_visits"`
}

// PatientCharts holds the chart datasets derived from the patient
// collection. Every enum key is always present, zero-defaulted.
type PatientCharts struct {
	StatusDistribution map[PatientStatus]int `json:"status_distribution"`
	AgeDistribution    map[string]int        `json:"age_distribution"`
	// MonthlyBirths counts patients by birth month, index 0 = January,
	// independent of birth year.
	MonthlyBirths     [12]int        `json:"monthly_births"`
	StageDistribution map[string]int `json:"stage_distribution"`
}
