package ai

// TripRequest captures the structured output from the model. Empty fields were not
// mentioned or could not be resolved.
type TripRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
	// Date is YYYY-MM-DD.
	Date string `json:"date,omitempty"`
}
