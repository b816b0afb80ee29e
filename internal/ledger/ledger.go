// Package ledger provides the document and training stores behind the
// onboarding workers. Both ledgers exist as a Postgres implementation for
// production and an in-memory one for tests; workers receive the interface
// at construction and never touch the store directly.
package ledger

import "errors"

var (
	// ErrNotFound is returned when a submission or training record does
	// not exist for the given key.
	ErrNotFound = errors.New("ledger: record not found")

	// ErrResourceMissing is returned when a training module cannot be
	// started because it has no resource to open. Start fails closed.
	ErrResourceMissing = errors.New("ledger: training module has no resource")

	// ErrNotInProgress is returned when completion is requested for a
	// module that was never started.
	ErrNotInProgress = errors.New("ledger: training module is not in progress")
)

// DefaultModuleResources maps curriculum modules to their learning content.
// Team Introduction is an in-person session and deliberately has no link,
// so starting it online is refused until HR attaches one.
var DefaultModuleResources = map[string]string{
	"Company Overview":       "https://learn.company.com/onboarding/company-overview",
	"Code of Conduct":        "https://learn.company.com/onboarding/code-of-conduct",
	"Safety Guidelines":      "https://learn.company.com/onboarding/safety-guidelines",
	"IT Security Training":   "https://learn.company.com/onboarding/it-security",
	"Benefits Overview":      "https://learn.company.com/onboarding/benefits",
	"Performance Management": "https://learn.company.com/onboarding/performance",
	"Communication Tools":    "https://learn.company.com/onboarding/communication-tools",
	"Team Introduction":      "",
}
