package models

// Request and response for the travel signal endpoint.

type TravelRequest struct {
	Destination string `query:"destination" json:"destination" validate:"required,max=100"`
	StartDate   string `query:"start_date" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `query:"end_date" json:"end_date" validate:"required,datetime=2006-01-02"`
}

type TravelResponse struct {
	Destination    string               `json:"destination"`
	StartDate      string               `json:"start_date"`
	EndDate        string               `json:"end_date"`
	TotalScore     int                  `json:"total_score"`
	Feasibility    Feasibility          `json:"feasibility"`
	Signals        map[SignalKey]Signal `json:"signals"`
	MissingSignals []SignalKey          `json:"missing_signals"`
}
