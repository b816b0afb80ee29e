// internal/workers/data-access/search-roster/handler_test.go
package searchroster

import (
	"context"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"onboarding-workers/internal/common/logger"
)

// ==========================
// Test Helpers
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		DefaultIndex: "employee_roster",
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

// createRealElasticsearchClient connects to a local Elasticsearch instance.
// Tests that need it are skipped when none is reachable.
func createRealElasticsearchClient(t *testing.T) *elasticsearch.Client {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
	})
	require.NoError(t, err)

	res, err := client.Info()
	if err != nil {
		t.Skipf("Elasticsearch not available at localhost:9200: %v", err)
	}
	defer res.Body.Close()

	return client
}

// ==========================
// Unit Tests
// ==========================

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, output)
}

func TestHandler_Execute_UnknownQueryType(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, createTestLogger(t))

	input := &Input{QueryType: "fuzzy_lookup"}
	output, err := handler.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrSearchQueryFailed)
	assert.Equal(t, "SEARCH_QUERY_FAILED", handler.mapErrorToCode(err))
	assert.Equal(t, int32(3), handler.getRetryCount(err))
}

func TestHandler_Execute_MissingIndex(t *testing.T) {
	config := createTestConfig()
	config.DefaultIndex = ""
	handler := NewHandler(config, nil, createTestLogger(t))

	input := &Input{QueryType: "roster_search"}
	output, err := handler.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrIndexNotFound)
	assert.Equal(t, "INDEX_NOT_FOUND", handler.mapErrorToCode(err))
	assert.Equal(t, int32(0), handler.getRetryCount(err))
}

func TestHandler_ErrorMapping(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, createTestLogger(t))

	tests := []struct {
		name            string
		err             error
		expectedCode    string
		expectedRetries int32
	}{
		{
			name:            "connection failure retries",
			err:             ErrElasticsearchConnectionFailed,
			expectedCode:    "ELASTICSEARCH_CONNECTION_FAILED",
			expectedRetries: 3,
		},
		{
			name:            "query failure retries",
			err:             ErrSearchQueryFailed,
			expectedCode:    "SEARCH_QUERY_FAILED",
			expectedRetries: 3,
		},
		{
			name:            "timeout retries fewer",
			err:             ErrSearchTimeout,
			expectedCode:    "SEARCH_TIMEOUT",
			expectedRetries: 2,
		},
		{
			name:            "missing index does not retry",
			err:             ErrIndexNotFound,
			expectedCode:    "INDEX_NOT_FOUND",
			expectedRetries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, handler.mapErrorToCode(tt.err))
			assert.Equal(t, tt.expectedRetries, handler.getRetryCount(tt.err))
		})
	}
}

// ==========================
// Integration Tests
// ==========================

func TestHandler_Execute_RosterSearch_Integration(t *testing.T) {
	client := createRealElasticsearchClient(t)
	handler := NewHandler(createTestConfig(), client, createTestLogger(t))

	input := &Input{
		QueryType: "roster_search",
		Filters:   map[string]interface{}{"keywords": "engineering"},
	}
	input.Pagination.Size = 10

	output, err := handler.Execute(context.Background(), input)
	if err != nil {
		t.Skipf("roster index not available: %v", err)
	}

	require.NotNil(t, output)
	assert.GreaterOrEqual(t, output.TotalHits, int64(0))
	assert.LessOrEqual(t, len(output.Data), 10)
	t.Logf("roster_search returned %d hits in %dms", output.TotalHits, output.Took)
}

func TestHandler_Execute_DepartmentRoster_Integration(t *testing.T) {
	client := createRealElasticsearchClient(t)
	handler := NewHandler(createTestConfig(), client, createTestLogger(t))

	input := &Input{
		QueryType:  "department_roster",
		Department: "Engineering",
	}

	output, err := handler.Execute(context.Background(), input)
	if err != nil {
		t.Skipf("roster index not available: %v", err)
	}

	require.NotNil(t, output)
	for _, row := range output.Data {
		if dept, ok := row["department"].(string); ok {
			assert.Equal(t, "Engineering", dept)
		}
	}
}
