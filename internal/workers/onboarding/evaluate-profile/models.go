// internal/workers/onboarding/evaluate-profile/models.go
package evaluateprofile

type Input struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	Department        string `json:"department,omitempty"`
	Position          string `json:"position,omitempty"`
	Manager           string `json:"manager,omitempty"`
	WorkLocation      string `json:"workLocation,omitempty"`
	StartDate         string `json:"startDate,omitempty"`
}

type Output struct {
	DetailScore     int      `json:"profileDetailScore"`
	HeaderTier      int      `json:"profileHeaderTier"`
	ProfileComplete bool     `json:"profileComplete"`
	MissingFields   []string `json:"missingFields"`
}
