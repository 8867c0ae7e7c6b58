package user

// SetRoleRequest is the body of POST /admin/role.
type SetRoleRequest struct {
	TargetUID string `json:"targetUid" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=admin user"`
}

// Updates is the merge-patch accepted by POST /admin/user.
type Updates struct {
	Role            *string  `json:"role" binding:"omitempty,oneof=admin user"`
	Status          *string  `json:"status" binding:"omitempty,oneof=active blocked banned"`
	AssignedRegions []string `json:"assignedRegions"`
}

// UpdateRequest is the body of POST /admin/user.
type UpdateRequest struct {
	TargetUID string  `json:"targetUid" binding:"required"`
	Updates   Updates `json:"updates" binding:"required"`
}

// SetupRequest is the body of POST /setup.
type SetupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName" binding:"required"`
}

// SetupResponse is returned by POST /setup.
type SetupResponse struct {
	UID     string `json:"uid"`
	Message string `json:"message"`
}

// Response is one stored user record as returned by the API.
type Response struct {
	UID             string   `json:"uid"`
	Email           string   `json:"email"`
	DisplayName     string   `json:"displayName,omitempty"`
	Role            string   `json:"role"`
	Status          string   `json:"status"`
	AssignedRegions []string `json:"assignedRegions"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// ListResponse wraps a list of user records.
type ListResponse struct {
	Users      []Response `json:"users"`
	TotalCount int        `json:"totalCount"`
}
