package dto

// ClosePeriodRequest defines the payload for closing a period.
type ClosePeriodRequest struct {
	Notes string `json:"notes"`
}

// PeriodStatusResponse reports whether a period is locked.
type PeriodStatusResponse struct {
	Period   string `json:"period"`
	Closed   bool   `json:"closed"`
	ClosedAt string `json:"closedAt,omitempty"`
	ClosedBy string `json:"closedBy,omitempty"`
	Notes    string `json:"notes,omitempty"`
}
