package alert

// CreateRequest is the body of POST /alerts.
type CreateRequest struct {
	Type            string  `json:"type" binding:"required,alerttype"`
	Title           string  `json:"title" binding:"required,min=3,max=100"`
	Description     string  `json:"description" binding:"required,min=10,max=500"`
	Latitude        float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude       float64 `json:"longitude" binding:"min=-180,max=180"`
	LocationName    string  `json:"locationName"`
	LocationState   string  `json:"locationState"`
	LocationCountry string  `json:"locationCountry"`
	TTLMinutes      int     `json:"ttlMinutes" binding:"omitempty,min=1,max=720"`
}

// VoteRequest is the body of POST /alerts/:id/vote.
type VoteRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// Response is one alert as returned by the API.
type Response struct {
	ID              string  `json:"id"`
	CreatorUID      string  `json:"userId"`
	Type            string  `json:"type"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	LocationName    string  `json:"locationName,omitempty"`
	LocationState   string  `json:"locationState,omitempty"`
	LocationCountry string  `json:"locationCountry,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	ExpiresAt       string  `json:"expiresAt,omitempty"`
	ResolvedAt      string  `json:"resolvedAt,omitempty"`
	ResolvedBy      string  `json:"resolvedBy,omitempty"`
	FalseFlaggedAt  string  `json:"falseFlaggedAt,omitempty"`
	FalseFlaggedBy  string  `json:"falseFlaggedBy,omitempty"`
	Upvotes         int64   `json:"upvotes"`
	Downvotes       int64   `json:"downvotes"`
}

// ListResponse wraps a list of alerts.
type ListResponse struct {
	Alerts     []Response `json:"alerts"`
	TotalCount int        `json:"totalCount"`
}

// CreatedResponse is returned by POST /alerts.
type CreatedResponse struct {
	ID string `json:"id"`
}
