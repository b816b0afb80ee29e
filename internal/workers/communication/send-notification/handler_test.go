// internal/workers/communication/send-notification/handler_test.go
package sendnotification

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"onboarding-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, input)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, input)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		EmailEnabled:     true,
		SMSEnabled:       true,
		FromEmail:        "onboarding@company.com",
		AWSRegion:        "us-east-1",
		TemplateRegistry: "test-registry",
		Timeout:          30 * time.Second,
	}
}

func createTestInput(notificationType string) *Input {
	return &Input{
		RecipientID:      "emp-001",
		RecipientType:    RecipientTypeEmployee,
		NotificationType: notificationType,
		EmployeeEmail:    "sam.carter@company.com",
		Priority:         "high",
		Metadata: map[string]interface{}{
			"startDate":    "2024-02-01",
			"documentType": "Government ID",
		},
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func loadTestTemplates() map[string]map[string]interface{} {
	templates, _ := loadTemplates("")
	return templates
}

func expectEmployeeLookup(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT TRIM\(CONCAT\(first_name, ' ', last_name\)\), email, phone FROM employee_accounts WHERE id = \$1`).
		WithArgs("emp-001").
		WillReturnRows(sqlmock.NewRows([]string{"name", "email", "phone"}).
			AddRow("Sam Carter", "sam.carter@company.com", "+1234567890"))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		emailEnabled   bool
		smsEnabled     bool
		priority       string
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:         "email and SMS success",
			input:        createTestInput(TypeWelcomeEmail),
			emailEnabled: true,
			smsEnabled:   true,
			priority:     "high",
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, StatusSent, output.Status)
				assert.NotEmpty(t, output.NotificationID)
				assert.NotEmpty(t, output.SentAt)
			},
		},
		{
			name:         "email only success",
			input:        createTestInput(TypeDocumentVerified),
			emailEnabled: true,
			smsEnabled:   false,
			priority:     "medium",
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, StatusSent, output.Status)
			},
		},
		{
			name:         "SMS only for high priority",
			input:        createTestInput(TypeDocumentRejected),
			emailEnabled: false,
			smsEnabled:   true,
			priority:     "high",
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, StatusSent, output.Status)
			},
		},
		{
			name:         "no SMS for medium priority",
			input:        createTestInput(TypeOnboardingComplete),
			emailEnabled: false,
			smsEnabled:   true,
			priority:     "medium",
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, StatusDisabled, output.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			expectEmployeeLookup(mock)

			mockSES := &MockSESService{
				SendEmailFunc: func(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
					assert.Equal(t, "sam.carter@company.com", input.Destination.ToAddresses[0])
					assert.Equal(t, "onboarding@company.com", *input.Source)
					return &ses.SendEmailOutput{}, nil
				},
			}

			mockSNS := &MockSNSService{
				PublishFunc: func(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
					if tt.priority == "high" && tt.smsEnabled {
						assert.Equal(t, "+1234567890", *input.PhoneNumber)
					}
					return &sns.PublishOutput{}, nil
				},
			}

			config := createTestConfig()
			config.EmailEnabled = tt.emailEnabled
			config.SMSEnabled = tt.smsEnabled

			handler := &Handler{
				config:      config,
				db:          db,
				logger:      createTestLogger(t),
				sesClient:   mockSES,
				snsClient:   mockSNS,
				templateMap: loadTestTemplates(),
			}

			tt.input.Priority = tt.priority
			output, err := handler.Execute(context.Background(), tt.input)

			assert.NoError(t, err)
			assert.NotNil(t, output)

			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_RecipientNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT TRIM\(CONCAT\(first_name, ' ', last_name\)\), email, phone FROM employee_accounts WHERE id = \$1`).
		WithArgs("emp-001").
		WillReturnError(sql.ErrNoRows)

	handler := &Handler{
		config:      createTestConfig(),
		db:          db,
		logger:      createTestLogger(t),
		sesClient:   &MockSESService{},
		snsClient:   &MockSNSService{},
		templateMap: loadTestTemplates(),
	}

	input := createTestInput(TypeWelcomeEmail)
	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.NotEmpty(t, output.NotificationID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_EmailFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	expectEmployeeLookup(mock)

	mockSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
			return nil, errors.New("SES service unavailable")
		},
	}

	mockSNS := &MockSNSService{
		PublishFunc: func(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
			return &sns.PublishOutput{}, nil
		},
	}

	handler := &Handler{
		config:      createTestConfig(),
		db:          db,
		logger:      createTestLogger(t),
		sesClient:   mockSES,
		snsClient:   mockSNS,
		templateMap: loadTestTemplates(),
	}

	input := createTestInput(TypeWelcomeEmail)
	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, StatusFailed, output.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_SMSFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	expectEmployeeLookup(mock)

	mockSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
			return &ses.SendEmailOutput{}, nil
		},
	}

	mockSNS := &MockSNSService{
		PublishFunc: func(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
			return nil, errors.New("SNS service unavailable")
		},
	}

	handler := &Handler{
		config:      createTestConfig(),
		db:          db,
		logger:      createTestLogger(t),
		sesClient:   mockSES,
		snsClient:   mockSNS,
		templateMap: loadTestTemplates(),
	}

	input := createTestInput(TypeDocumentRejected)
	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, StatusFailed, output.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_TemplateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	expectEmployeeLookup(mock)

	handler := &Handler{
		config:      createTestConfig(),
		db:          db,
		logger:      createTestLogger(t),
		sesClient:   &MockSESService{},
		snsClient:   &MockSNSService{},
		templateMap: loadTestTemplates(),
	}

	input := createTestInput("unknown_template_type")
	output, err := handler.Execute(context.Background(), input)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "template not found")
	assert.Nil(t, output)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Unit Tests
// ==========================

func TestHandler_GetRecipientContact(t *testing.T) {
	tests := []struct {
		name          string
		recipientType string
		query         string
		expectedName  string
		expectedEmail string
		expectedPhone string
		expectError   bool
		errorContains string
	}{
		{
			name:          "employee recipient",
			recipientType: RecipientTypeEmployee,
			query:         `SELECT TRIM\(CONCAT\(first_name, ' ', last_name\)\), email, phone FROM employee_accounts WHERE id = \$1`,
			expectedName:  "Sam Carter",
			expectedEmail: "sam.carter@company.com",
			expectedPhone: "+1234567890",
		},
		{
			name:          "hr recipient",
			recipientType: RecipientTypeHR,
			query:         `SELECT name, email, phone FROM hr_contacts WHERE id = \$1`,
			expectedName:  "HR Desk",
			expectedEmail: "hr@company.com",
			expectedPhone: "+1987654321",
		},
		{
			name:          "invalid recipient type",
			recipientType: "invalid",
			expectError:   true,
			errorContains: "invalid recipient type",
		},
		{
			name:          "recipient not found",
			recipientType: RecipientTypeEmployee,
			query:         `SELECT TRIM\(CONCAT\(first_name, ' ', last_name\)\), email, phone FROM employee_accounts WHERE id = \$1`,
			expectError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			handler := &Handler{db: db, logger: createTestLogger(t)}

			if tt.query != "" {
				expectation := mock.ExpectQuery(tt.query).WithArgs("recipient-001")
				if tt.expectError {
					expectation.WillReturnError(sql.ErrNoRows)
				} else {
					expectation.WillReturnRows(sqlmock.NewRows([]string{"name", "email", "phone"}).
						AddRow(tt.expectedName, tt.expectedEmail, tt.expectedPhone))
				}
			}

			name, email, phone, err := handler.getRecipientContact("recipient-001", tt.recipientType)

			if tt.expectError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedName, name)
				assert.Equal(t, tt.expectedEmail, email)
				assert.Equal(t, tt.expectedPhone, phone)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]interface{}
		expected string
	}{
		{
			name:     "replaces known placeholders",
			template: "Hi {{employeeName}}, your start date is {{startDate}}.",
			data: map[string]interface{}{
				"employeeName": "Sam Carter",
				"startDate":    "2024-02-01",
			},
			expected: "Hi Sam Carter, your start date is 2024-02-01.",
		},
		{
			name:     "removes missing placeholders",
			template: "Hi {{employeeName}}, welcome{{unknown}}!",
			data:     map[string]interface{}{"employeeName": "Sam Carter"},
			expected: "Hi Sam Carter, welcome!",
		},
		{
			name:     "renders integer values",
			template: "Progress: {{progress}}%",
			data:     map[string]interface{}{"progress": 59},
			expected: "Progress: 59%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, renderTemplate(tt.template, tt.data))
		})
	}
}

func TestLoadTemplates_CoversAllNotificationTypes(t *testing.T) {
	templates, err := loadTemplates("")
	assert.NoError(t, err)

	for _, notificationType := range []string{
		TypeWelcomeEmail,
		TypeDocumentVerified,
		TypeDocumentRejected,
		TypeOnboardingComplete,
	} {
		template, ok := templates[notificationType]
		assert.True(t, ok, "missing template for %s", notificationType)
		assert.NotEmpty(t, template["subject"])
		assert.NotEmpty(t, template["body"])
	}
}

func TestLoadTemplates_RegistryFileOverridesBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	content := `{
		"welcome_email": {
			"subject": "Welcome aboard",
			"body": "Hello {{employeeName}}, see you on {{startDate}}."
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	templates, err := loadTemplates(path)
	require.NoError(t, err)

	// The file wins for the types it defines.
	assert.Equal(t, "Welcome aboard", templates[TypeWelcomeEmail]["subject"])
	// Types the file does not define keep their built-in text.
	assert.NotEmpty(t, templates[TypeDocumentVerified]["subject"])
}

func TestLoadTemplates_MissingFileFallsBackToBuiltins(t *testing.T) {
	templates, err := loadTemplates(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, templates[TypeWelcomeEmail]["subject"])
}

func TestLoadTemplates_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := loadTemplates(path)
	require.Error(t, err)
}
