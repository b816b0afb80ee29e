// pkg/registry/registry_test.go
package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry() *ActivityRegistry {
	return &ActivityRegistry{
		Version:     "1.0.0",
		LastUpdated: "2024-02-01T00:00:00Z",
		Activities: []Activity{
			{
				ID:          "evaluate-profile",
				DisplayName: "Evaluate Profile",
				Category:    "onboarding",
				TaskType:    "evaluate-profile",
				InputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"employeeEmail"},
					"properties": map[string]interface{}{
						"employeeEmail": map[string]interface{}{"type": "string"},
					},
				},
				OutputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"profileDetailScore": map[string]interface{}{"type": "integer"},
						"profileHeaderTier":  map[string]interface{}{"type": "integer"},
					},
				},
			},
			{
				ID:          "record-document-upload",
				DisplayName: "Record Document Upload",
				Category:    "onboarding",
				TaskType:    "record-document-upload",
			},
		},
	}
}

func TestLoadRegistry(t *testing.T) {
	reg := sampleRegistry()
	data, err := json.Marshal(reg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", loaded.Version)
	assert.Len(t, loaded.Activities, 2)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestFindByTaskType(t *testing.T) {
	reg := sampleRegistry()

	activity, ok := reg.FindByTaskType("evaluate-profile")
	require.True(t, ok)
	assert.Equal(t, "Evaluate Profile", activity.DisplayName)

	_, ok = reg.FindByTaskType("unknown-task")
	assert.False(t, ok)
}

func TestValidateSchemas(t *testing.T) {
	reg := sampleRegistry()
	assert.NoError(t, reg.ValidateSchemas())

	reg.Activities[0].InputSchema = map[string]interface{}{
		"type": 42, // type must be a string or array
	}
	assert.Error(t, reg.ValidateSchemas())
}

func TestValidatePayload(t *testing.T) {
	schema := map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"employeeEmail"},
		"properties": map[string]interface{}{
			"employeeEmail": map[string]interface{}{"type": "string"},
		},
	}

	assert.NoError(t, ValidatePayload(schema, map[string]interface{}{
		"employeeEmail": "sam.carter@company.com",
	}))

	err := ValidatePayload(schema, map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payload invalid")

	// Empty schema accepts anything
	assert.NoError(t, ValidatePayload(nil, map[string]interface{}{"anything": true}))
}
