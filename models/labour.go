package models

// LabourSearchFilters are the recognized query parameters for GET /labours
type LabourSearchFilters struct {
	Search        string
	City          string
	Skills        []string
	MinExperience *int
	MaxExperience *int
	LabourType    string
	AvailableOnly bool
	MinRating     float64
	Page          int
	Limit         int
	SortBy        string // "rating", "experience" or "recent"
}

// LabourWithDistance is a labour profile annotated with the distance in km
// from the searched coordinates
type LabourWithDistance struct {
	UserResponse
	Distance float64 `json:"distance"`
}

// LabourSearchResponse is the paginated search result
type LabourSearchResponse struct {
	Success    bool           `json:"success"`
	Labours    []UserResponse `json:"labours"`
	Pagination Pagination     `json:"pagination"`
}

// NearbyLaboursResponse is the distance-sorted nearby result
type NearbyLaboursResponse struct {
	Success bool                 `json:"success"`
	Labours []LabourWithDistance `json:"labours"`
}
