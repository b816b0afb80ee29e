// internal/workers/communication/send-notification/models.go
package sendnotification

type Input struct {
	RecipientID      string                 `json:"recipientId"`
	RecipientType    string                 `json:"recipientType"` // "employee" or "hr"
	NotificationType string                 `json:"notificationType"`
	EmployeeEmail    string                 `json:"employeeEmail,omitempty"`
	Priority         string                 `json:"priority,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeWelcomeEmail       = "welcome_email"
	TypeDocumentVerified   = "document_verified"
	TypeDocumentRejected   = "document_rejected"
	TypeOnboardingComplete = "onboarding_complete"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Recipient types
const (
	RecipientTypeEmployee = "employee"
	RecipientTypeHR       = "hr"
)
