package dto

// DashboardResponse contadores del tablero, ya filtrados por el alcance del actor.
type DashboardResponse struct {
	OpenServices       int               `json:"open_services"`
	InProgressServices int               `json:"in_progress_services"`
	CompletedServices  int               `json:"completed_services"`
	CancelledServices  int               `json:"cancelled_services"`
	Customers          int               `json:"customers"`
	Personnel          int               `json:"personnel"`
	RecentServices     []ServiceResponse `json:"recent_services"`
}
