package sessionsignout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	stderrors "onboarding-workers/internal/common/errors"
	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ==========================
// Test Helpers
// ==========================

func createValidInput() *Input {
	return &Input{
		EmployeeEmail: "sam.carter@company.com",
		Token:         "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.test",
		SessionID:     "session-456",
		DeviceID:      "device-789",
		SignoutAll:    false,
		Reason:        "user_initiated",
		Metadata:      map[string]interface{}{"ip": "192.168.1.1"},
	}
}

func createValidConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       10 * time.Second,
		RedisAddress:  "localhost:6379",
		RedisPassword: "",
		RedisDB:       0,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	activatedJob := &pb.ActivatedJob{
		Key:                      key,
		Type:                     TaskType,
		ProcessInstanceKey:       key * 10,
		BpmnProcessId:            "test-process",
		ProcessDefinitionVersion: 1,
		ProcessDefinitionKey:     1,
		ElementId:                "Activity_SessionSignout",
		ElementInstanceKey:       1,
		CustomHeaders:            "{}",
		Worker:                   "test-worker",
		Retries:                  3,
		Deadline:                 0,
		Variables:                string(variablesJSON),
	}

	return entities.Job{ActivatedJob: activatedJob}
}

// expectAuditEvent matches the signout event write, whose key embeds a
// timestamp.
func expectAuditEvent(redisMock redismock.ClientMock, email string) {
	redisMock.Regexp().ExpectSet(fmt.Sprintf(`signout:event:%s:\d+`, email), `.*`, 30*24*time.Hour).SetVal("OK")
}

// ==========================
// Handler Creation Tests
// ==========================

func TestHandler_NewHandler(t *testing.T) {
	tests := []struct {
		name    string
		opts    HandlerOptions
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid configuration",
			opts: HandlerOptions{
				CustomConfig: createValidConfig(),
			},
			wantErr: false,
		},
		{
			name: "missing redis address",
			opts: HandlerOptions{
				CustomConfig: &Config{
					Enabled:       true,
					MaxJobsActive: 5,
					Timeout:       10 * time.Second,
				},
			},
			wantErr: true,
			errMsg:  "redis_address is required",
		},
		{
			name: "invalid timeout",
			opts: HandlerOptions{
				CustomConfig: &Config{
					Enabled:       true,
					MaxJobsActive: 5,
					Timeout:       0,
					RedisAddress:  "localhost:6379",
				},
			},
			wantErr: true,
			errMsg:  "timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := NewHandler(tt.opts)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, handler)
			} else {
				require.NoError(t, err)
				require.NotNil(t, handler)
				assert.Equal(t, TaskType, handler.GetTaskType())
				assert.True(t, handler.IsEnabled())
			}
		})
	}
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	handler := &Handler{
		config: createValidConfig(),
		logger: createTestLogger(t),
	}

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		errCode   string
		validate  func(t *testing.T, input *Input)
	}{
		{
			name: "valid full input",
			variables: map[string]interface{}{
				"employeeEmail": "sam.carter@company.com",
				"token":         "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.test",
				"sessionId":     "session-456",
				"deviceId":      "device-789",
				"signoutAll":    true,
				"reason":        "user_initiated",
			},
			validate: func(t *testing.T, input *Input) {
				assert.Equal(t, "sam.carter@company.com", input.EmployeeEmail)
				assert.Equal(t, "session-456", input.SessionID)
				assert.True(t, input.SignoutAll)
			},
		},
		{
			name: "minimal valid input",
			variables: map[string]interface{}{
				"employeeEmail": "sam.carter@company.com",
				"token":         "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.test",
			},
			validate: func(t *testing.T, input *Input) {
				assert.Empty(t, input.SessionID)
				assert.False(t, input.SignoutAll)
			},
		},
		{
			name: "missing token",
			variables: map[string]interface{}{
				"employeeEmail": "sam.carter@company.com",
			},
			wantErr: true,
			errCode: "VALIDATION_FAILED",
		},
		{
			name: "token too short",
			variables: map[string]interface{}{
				"employeeEmail": "sam.carter@company.com",
				"token":         "short",
			},
			wantErr: true,
			errCode: "VALIDATION_FAILED",
		},
		{
			name: "unexpected property rejected",
			variables: map[string]interface{}{
				"employeeEmail": "sam.carter@company.com",
				"token":         "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.test",
				"surprise":      "value",
			},
			wantErr: true,
			errCode: "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := createMockJob(1, tt.variables)
			input, err := handler.parseInput(job)

			if tt.wantErr {
				require.Error(t, err)
				stdErr, ok := err.(*stderrors.StandardError)
				require.True(t, ok)
				assert.Equal(t, tt.errCode, string(stdErr.Code))
				assert.Nil(t, input)
			} else {
				require.NoError(t, err)
				require.NotNil(t, input)
				if tt.validate != nil {
					tt.validate(t, input)
				}
			}
		})
	}
}

// ==========================
// Service Tests
// ==========================

func TestService_Execute_SingleSession(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()

	service := &Service{
		config:      createValidConfig(),
		logger:      createTestLogger(t),
		redisClient: redisClient,
	}

	input := createValidInput()
	sessionKey := fmt.Sprintf("session:%s:%s", input.EmployeeEmail, input.SessionID)

	storedSession, _ := json.Marshal(models.Session{
		ID:         input.SessionID,
		UserID:     input.EmployeeEmail,
		DeviceInfo: "Chrome on macOS",
		CreatedAt:  time.Now().Add(-2 * time.Hour),
	})

	redisMock.ExpectGet(sessionKey).SetVal(string(storedSession))
	redisMock.ExpectDel(sessionKey).SetVal(1)
	redisMock.ExpectSet("token:revoked:"+input.Token, "1", 24*time.Hour).SetVal("OK")
	expectAuditEvent(redisMock, input.EmployeeEmail)

	output, err := service.Execute(context.Background(), input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.True(t, output.Success)
	assert.Equal(t, 1, output.SessionsInvalidated)
	assert.True(t, output.TokenRevoked)
	assert.False(t, output.SignedOutAt.IsZero())

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_Execute_SignoutAll(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()

	service := &Service{
		config:      createValidConfig(),
		logger:      createTestLogger(t),
		redisClient: redisClient,
	}

	input := createValidInput()
	input.SignoutAll = true

	pattern := fmt.Sprintf("session:%s:*", input.EmployeeEmail)
	keys := []string{
		fmt.Sprintf("session:%s:session-1", input.EmployeeEmail),
		fmt.Sprintf("session:%s:session-2", input.EmployeeEmail),
		fmt.Sprintf("session:%s:session-3", input.EmployeeEmail),
	}

	redisMock.ExpectKeys(pattern).SetVal(keys)
	redisMock.ExpectDel(keys...).SetVal(int64(len(keys)))
	redisMock.ExpectSet("token:revoked:"+input.Token, "1", 24*time.Hour).SetVal("OK")
	expectAuditEvent(redisMock, input.EmployeeEmail)

	output, err := service.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, 3, output.SessionsInvalidated)
	assert.True(t, output.TokenRevoked)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_Execute_SignoutAll_NoSessions(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()

	service := &Service{
		config:      createValidConfig(),
		logger:      createTestLogger(t),
		redisClient: redisClient,
	}

	input := createValidInput()
	input.SignoutAll = true

	redisMock.ExpectKeys(fmt.Sprintf("session:%s:*", input.EmployeeEmail)).SetVal([]string{})
	redisMock.ExpectSet("token:revoked:"+input.Token, "1", 24*time.Hour).SetVal("OK")
	expectAuditEvent(redisMock, input.EmployeeEmail)

	output, err := service.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, 0, output.SessionsInvalidated)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_Execute_SessionDeleteFails(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()

	service := &Service{
		config:      createValidConfig(),
		logger:      createTestLogger(t),
		redisClient: redisClient,
	}

	input := createValidInput()
	sessionKey := fmt.Sprintf("session:%s:%s", input.EmployeeEmail, input.SessionID)

	redisMock.ExpectGet(sessionKey).RedisNil()
	redisMock.ExpectDel(sessionKey).SetErr(errors.New("connection refused"))

	output, err := service.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, "SESSION_INVALIDATION_ERROR", string(stdErr.Code))
	assert.True(t, stdErr.Retryable)
}

func TestService_Execute_TokenRevocationFailureTolerated(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()

	service := &Service{
		config:      createValidConfig(),
		logger:      createTestLogger(t),
		redisClient: redisClient,
	}

	input := createValidInput()
	sessionKey := fmt.Sprintf("session:%s:%s", input.EmployeeEmail, input.SessionID)

	redisMock.ExpectGet(sessionKey).RedisNil()
	redisMock.ExpectDel(sessionKey).SetVal(1)
	redisMock.ExpectSet("token:revoked:"+input.Token, "1", 24*time.Hour).SetErr(errors.New("write failed"))
	expectAuditEvent(redisMock, input.EmployeeEmail)

	output, err := service.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, 1, output.SessionsInvalidated)
	assert.False(t, output.TokenRevoked)
}

func TestService_Execute_InvalidEmail(t *testing.T) {
	redisClient, _ := redismock.NewClientMock()

	service := &Service{
		config:      createValidConfig(),
		logger:      createTestLogger(t),
		redisClient: redisClient,
	}

	input := createValidInput()
	input.EmployeeEmail = ""

	output, err := service.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", string(stdErr.Code))
	assert.False(t, stdErr.Retryable)
}

func TestService_Execute_RedisNotConfigured(t *testing.T) {
	service := &Service{
		config: createValidConfig(),
		logger: createTestLogger(t),
	}

	output, err := service.Execute(context.Background(), createValidInput())

	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, "REDIS_NOT_CONFIGURED", string(stdErr.Code))
}

// ==========================
// Schema Tests
// ==========================

func TestGetInputSchema(t *testing.T) {
	schema := GetInputSchema()

	assert.Equal(t, "object", schema.Type)
	assert.Contains(t, schema.Required, "employeeEmail")
	assert.Contains(t, schema.Required, "token")
	assert.False(t, schema.AdditionalProperties)
	assert.Contains(t, schema.Properties, "signoutAll")
}

func TestGetOutputSchema(t *testing.T) {
	schema := GetOutputSchema()

	assert.Equal(t, "object", schema.Type)
	assert.Contains(t, schema.Properties, "success")
	assert.Contains(t, schema.Properties, "sessionsInvalidated")
}
