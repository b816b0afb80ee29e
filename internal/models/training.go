// internal/models/training.go
package models

import (
	"context"
	"time"
)

// Training module statuses.
const (
	TrainingStatusNotStarted = "not-started"
	TrainingStatusInProgress = "in-progress"
	TrainingStatusCompleted  = "completed"
)

// CurriculumModule describes one module of the fixed onboarding curriculum.
type CurriculumModule struct {
	Name     string `json:"name"`
	Duration int    `json:"duration"` // minutes
}

// Curriculum is the fixed set of eight onboarding training modules.
var Curriculum = []CurriculumModule{
	{Name: "Company Overview", Duration: 30},
	{Name: "Code of Conduct", Duration: 45},
	{Name: "Safety Guidelines", Duration: 25},
	{Name: "IT Security Training", Duration: 60},
	{Name: "Benefits Overview", Duration: 20},
	{Name: "Performance Management", Duration: 40},
	{Name: "Communication Tools", Duration: 35},
	{Name: "Team Introduction", Duration: 15},
}

// CurriculumSize is the module count used by progress math.
const CurriculumSize = 8

// IsCurriculumModule reports whether moduleName belongs to the curriculum.
func IsCurriculumModule(moduleName string) bool {
	for _, m := range Curriculum {
		if m.Name == moduleName {
			return true
		}
	}
	return false
}

// TrainingRecord is one row of the per-employee training ledger.
type TrainingRecord struct {
	ID            string     `json:"id" db:"id"`
	EmployeeEmail string     `json:"employeeEmail" db:"employee_email"`
	ModuleName    string     `json:"moduleName" db:"module_name"`
	Status        string     `json:"status" db:"status"`
	Progress      int        `json:"progress" db:"progress"`
	ResourceURL   string     `json:"resourceUrl,omitempty" db:"resource_url"`
	StartedAt     *time.Time `json:"startedAt,omitempty" db:"started_at"`
	CompletedAt   *time.Time `json:"completedAt,omitempty" db:"completed_at"`
}

// TrainingLedger tracks module state for one store. Start fails closed: a
// module without a resource URL stays not-started.
type TrainingLedger interface {
	Seed(ctx context.Context, employeeEmail string) error
	Start(ctx context.Context, employeeEmail, moduleName string) (*TrainingRecord, error)
	Complete(ctx context.Context, employeeEmail, moduleName string) (*TrainingRecord, error)
	Record(ctx context.Context, employeeEmail, moduleName string) (*TrainingRecord, error)
	CompletedCount(ctx context.Context, employeeEmail string) (int, error)
	Records(ctx context.Context, employeeEmail string) ([]TrainingRecord, error)
}
