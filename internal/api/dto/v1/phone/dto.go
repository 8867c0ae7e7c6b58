package phone

// GeoPoint mirrors the stored home location.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// RegisterRequest is the body of POST /phones.
type RegisterRequest struct {
	Name         string    `json:"name" binding:"required"`
	PhoneNumber  string    `json:"phoneNumber" binding:"required"`
	HomeLocation *GeoPoint `json:"homeLocation"`
	Categories   []string  `json:"categories"`
}

// UpdateRequest is the merge-patch body of PATCH /phones/:id.
type UpdateRequest struct {
	Name         *string   `json:"name"`
	PhoneNumber  *string   `json:"phoneNumber"`
	HomeLocation *GeoPoint `json:"homeLocation"`
	Categories   []string  `json:"categories"`
	IsActive     *bool     `json:"isActive"`
}

// Response is one registration as returned by the API.
type Response struct {
	ID           string    `json:"id"`
	OwnerUID     string    `json:"userId"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phoneNumber"`
	HomeLocation *GeoPoint `json:"homeLocation,omitempty"`
	Categories   []string  `json:"categories"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

// ListResponse wraps a list of registrations.
type ListResponse struct {
	Phones     []Response `json:"phones"`
	TotalCount int        `json:"totalCount"`
}

// CreatedResponse is returned by POST /phones.
type CreatedResponse struct {
	ID string `json:"id"`
}
