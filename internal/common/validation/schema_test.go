// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateInput(t *testing.T) {
	minLen := 3
	schema := JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"email":  {Type: "string", MinLength: &minLen},
			"action": {Type: "string", Enum: []string{"start", "complete"}},
		},
		Required: []string{"email"},
	}

	result := ValidateInput(map[string]interface{}{
		"email":  "hr@company.com",
		"action": "start",
	}, schema)
	assert.True(t, result.Valid)

	result = ValidateInput(map[string]interface{}{"action": "delete"}, schema)
	assert.False(t, result.Valid)
	messages := result.GetErrorMessages()
	assert.Len(t, messages, 2)
}

func TestValidateTaskType(t *testing.T) {
	assert.NoError(t, ValidateTaskType("evaluate-profile"))
	assert.NoError(t, ValidateTaskType("aggregate-progress"))
	assert.Error(t, ValidateTaskType("Evaluate-Profile"))
	assert.Error(t, ValidateTaskType("evaluate_profile"))
	assert.Error(t, ValidateTaskType("evaluate-profile-"))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("sam@company.com"))
	assert.False(t, ValidateEmail("not-an-email"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+1 (555) 010-2030"))
	assert.False(t, ValidatePhone("12ab"))
}
