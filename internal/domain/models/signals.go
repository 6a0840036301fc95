package models

// Feasibility buckets a total score for display.
type Feasibility string

const (
	FeasibilityHigh   Feasibility = "high"
	FeasibilityMedium Feasibility = "medium"
	FeasibilityLow    Feasibility = "low"
)

// TravelScore is the consolidated view of one evaluation.
// Note: no transport (json/http) concerns here.
type TravelScore struct {
	Query       TripQuery
	TotalScore  int
	Feasibility Feasibility
	Signals     map[SignalKey]Signal
	Missing     []SignalKey
}
