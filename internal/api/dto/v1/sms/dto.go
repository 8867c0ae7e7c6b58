package sms

// SendRequest is the body of POST /sms.
type SendRequest struct {
	PhoneNumbers []string `json:"phoneNumbers" binding:"required,min=1"`
	Message      string   `json:"message" binding:"required"`
}
