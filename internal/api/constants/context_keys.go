package constants

// Context keys set by the auth middleware
const (
	// ContextKeyPrincipal holds the verified *models.Principal
	ContextKeyPrincipal = "principal"
	// ContextKeyResolution holds the session's *models.RoleResolution
	ContextKeyResolution = "roleResolution"
	// ContextKeyUserID holds the principal's UID for convenience
	ContextKeyUserID = "userID"
)
