// internal/workers/onboarding/update-training-progress/models.go
package updatetrainingprogress

const (
	ActionStart    = "start"
	ActionContinue = "continue"
	ActionReview   = "review"
	ActionComplete = "complete"
)

type Input struct {
	EmployeeEmail string `json:"employeeEmail"`
	ModuleName    string `json:"moduleName"`
	Action        string `json:"action"`
}

type Output struct {
	Applied          bool   `json:"applied"`
	ModuleName       string `json:"moduleName"`
	ModuleStatus     string `json:"moduleStatus,omitempty"`
	ModuleProgress   int    `json:"moduleProgress"`
	ResourceURL      string `json:"resourceUrl,omitempty"`
	CompletedCount   int    `json:"completedCount"`
	TrainingProgress int    `json:"trainingProgress"`
}
