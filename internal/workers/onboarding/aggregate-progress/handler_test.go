// internal/workers/onboarding/aggregate-progress/handler_test.go
package aggregateprogress

import (
	"context"
	"encoding/json"
	"testing"

	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/ledger"
	"onboarding-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	handler   *Handler
	employees *ledger.MemoryEmployeeStore
	documents *ledger.MemoryDocumentLedger
	training  *ledger.MemoryTrainingLedger
	redis     *miniredis.Miniredis
}

func createTestFixture(t *testing.T) *testFixture {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	employees := ledger.NewMemoryEmployeeStore()
	documents := ledger.NewMemoryDocumentLedger()
	training := ledger.NewMemoryTrainingLedger()

	return &testFixture{
		handler:   NewHandler(cfg, logger.NewTestLogger(t), employees, documents, training, cache),
		employees: employees,
		documents: documents,
		training:  training,
		redis:     mr,
	}
}

func seedEmployee(t *testing.T, f *testFixture, email string) {
	t.Helper()
	err := f.employees.CreateAccount(context.Background(), &models.EmployeeAccount{
		ID:        "emp-1",
		FirstName: "Sam",
		LastName:  "Ortiz",
		Email:     email,
	})
	require.NoError(t, err)
}

func TestExecute_FreshAccount(t *testing.T) {
	f := createTestFixture(t)
	seedEmployee(t, f, "sam@company.com")

	output, err := f.handler.Execute(context.Background(), &Input{EmployeeEmail: "sam@company.com"})
	require.NoError(t, err)

	assert.Equal(t, 60, output.Snapshot.ProfileTier)
	assert.Equal(t, 0, output.Snapshot.DocumentsDone)
	assert.Equal(t, 0, output.Snapshot.TrainingDone)
	assert.Equal(t, 20, output.Overall)
	assert.True(t, output.Cached)

	account, err := f.employees.Account(context.Background(), "sam@company.com")
	require.NoError(t, err)
	assert.Equal(t, 20, account.Progress)
}

func TestExecute_MidOnboarding(t *testing.T) {
	f := createTestFixture(t)
	seedEmployee(t, f, "sam@company.com")
	ctx := context.Background()

	f.employees.SetProfile(&models.EmployeeProfile{
		Email:             "sam@company.com",
		Name:              "Sam Ortiz",
		ProfilePictureURL: "https://cdn.company.com/avatars/sam.png",
	})

	_, err := f.documents.RecordUpload(ctx, "sam@company.com", "Government ID", "passport.pdf", "")
	require.NoError(t, err)
	_, err = f.documents.RecordUpload(ctx, "sam@company.com", "Address Proof", "lease.pdf", "")
	require.NoError(t, err)

	for _, module := range []string{"Company Overview", "Code of Conduct", "Safety Guidelines"} {
		_, err = f.training.Start(ctx, "sam@company.com", module)
		require.NoError(t, err)
		_, err = f.training.Complete(ctx, "sam@company.com", module)
		require.NoError(t, err)
	}

	output, err := f.handler.Execute(ctx, &Input{EmployeeEmail: "sam@company.com"})
	require.NoError(t, err)

	assert.Equal(t, 100, output.Snapshot.ProfileTier)
	assert.Equal(t, 2, output.Snapshot.DocumentsDone)
	assert.Equal(t, 3, output.Snapshot.TrainingDone)
	assert.Equal(t, 59, output.Overall)
}

func TestExecute_CachesSnapshotInRedis(t *testing.T) {
	f := createTestFixture(t)
	seedEmployee(t, f, "sam@company.com")

	output, err := f.handler.Execute(context.Background(), &Input{EmployeeEmail: "sam@company.com"})
	require.NoError(t, err)
	require.True(t, output.Cached)

	raw, err := f.redis.Get("onboarding:progress:sam@company.com")
	require.NoError(t, err)

	var snapshot models.ProgressSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snapshot))
	assert.Equal(t, output.Overall, snapshot.Overall)
	assert.NotEmpty(t, snapshot.ComputedAt)
}

func TestExecute_IsIdempotent(t *testing.T) {
	f := createTestFixture(t)
	seedEmployee(t, f, "sam@company.com")
	ctx := context.Background()

	first, err := f.handler.Execute(ctx, &Input{EmployeeEmail: "sam@company.com"})
	require.NoError(t, err)
	second, err := f.handler.Execute(ctx, &Input{EmployeeEmail: "sam@company.com"})
	require.NoError(t, err)

	assert.Equal(t, first.Overall, second.Overall)
	assert.Equal(t, first.Snapshot.ProfileTier, second.Snapshot.ProfileTier)
}

func TestExecute_UnknownEmployee(t *testing.T) {
	f := createTestFixture(t)

	_, err := f.handler.Execute(context.Background(), &Input{EmployeeEmail: "nobody@company.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestExecute_SurvivesRedisOutage(t *testing.T) {
	f := createTestFixture(t)
	seedEmployee(t, f, "sam@company.com")
	f.redis.Close()

	output, err := f.handler.Execute(context.Background(), &Input{EmployeeEmail: "sam@company.com"})
	require.NoError(t, err)
	assert.False(t, output.Cached)
	assert.Equal(t, 20, output.Overall)
}
