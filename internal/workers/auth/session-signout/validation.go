package sessionsignout

import "onboarding-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"employeeEmail", "token"},
		Properties: map[string]validation.Property{
			"employeeEmail": {
				Type:        "string",
				Description: "Email of the employee signing out",
				MinLength:   intPtr(3),
				MaxLength:   intPtr(255),
			},
			"token": {
				Type:        "string",
				Description: "Portal token to revoke",
				MinLength:   intPtr(10),
				MaxLength:   intPtr(2000),
			},
			"sessionId": {
				Type:        "string",
				Description: "Session identifier to invalidate",
				MaxLength:   intPtr(255),
			},
			"deviceId": {
				Type:        "string",
				Description: "Device identifier",
				MaxLength:   intPtr(255),
			},
			"signoutAll": {
				Type:        "boolean",
				Description: "Whether to sign out of all sessions",
			},
			"reason": {
				Type:        "string",
				Description: "Reason for signing out",
				MaxLength:   intPtr(500),
			},
			"metadata": {
				Type:        "object",
				Description: "Additional metadata",
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"success": {
				Type:        "boolean",
				Description: "Whether signout was successful",
			},
			"message": {
				Type:        "string",
				Description: "Result message",
			},
			"sessionsInvalidated": {
				Type:        "integer",
				Description: "Number of sessions invalidated",
			},
			"tokenRevoked": {
				Type:        "boolean",
				Description: "Whether the token was revoked",
			},
			"signedOutAt": {
				Type:        "string",
				Description: "Timestamp of signout",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
