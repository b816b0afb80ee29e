package sessionsignout

import (
	"time"

	"onboarding-workers/internal/common/logger"
)

type Input struct {
	EmployeeEmail string                 `json:"employeeEmail"`
	Token         string                 `json:"token"`
	SessionID     string                 `json:"sessionId,omitempty"`
	DeviceID      string                 `json:"deviceId,omitempty"`
	SignoutAll    bool                   `json:"signoutAll,omitempty"`
	Reason        string                 `json:"reason,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	Success             bool      `json:"success"`
	Message             string    `json:"message"`
	SessionsInvalidated int       `json:"sessionsInvalidated,omitempty"`
	TokenRevoked        bool      `json:"tokenRevoked,omitempty"`
	SignedOutAt         time.Time `json:"signedOutAt,omitempty"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}
