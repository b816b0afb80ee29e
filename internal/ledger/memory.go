// internal/ledger/memory.go
package ledger

import (
	"context"
	"sync"
	"time"

	"onboarding-workers/internal/models"

	"github.com/google/uuid"
)

// MemoryDocumentLedger is an in-memory DocumentLedger used in tests and in
// demo setups without Postgres.
type MemoryDocumentLedger struct {
	mu   sync.RWMutex
	byID map[string]*models.DocumentSubmission
	// employee email -> document type -> submission id
	byType map[string]map[string]string
}

func NewMemoryDocumentLedger() *MemoryDocumentLedger {
	return &MemoryDocumentLedger{
		byID:   make(map[string]*models.DocumentSubmission),
		byType: make(map[string]map[string]string),
	}
}

func (l *MemoryDocumentLedger) Seed(_ context.Context, employeeEmail string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.byType[employeeEmail] == nil {
		l.byType[employeeEmail] = make(map[string]string)
	}
	for _, docType := range models.RequiredDocuments {
		if _, ok := l.byType[employeeEmail][docType]; ok {
			continue
		}
		sub := &models.DocumentSubmission{
			ID:            uuid.New().String(),
			EmployeeEmail: employeeEmail,
			DocumentType:  docType,
			Status:        models.DocumentStatusPending,
		}
		l.byID[sub.ID] = sub
		l.byType[employeeEmail][docType] = sub.ID
	}
	return nil
}

func (l *MemoryDocumentLedger) RecordUpload(_ context.Context, employeeEmail, docType, fileName, fileURL string) (*models.DocumentSubmission, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()

	if types, ok := l.byType[employeeEmail]; ok {
		if id, ok := types[docType]; ok {
			sub := l.byID[id]
			sub.FileName = fileName
			sub.FileURL = fileURL
			sub.SubmittedAt = now
			if sub.Status != models.DocumentStatusVerified {
				sub.Status = models.DocumentStatusUploaded
			}
			cp := *sub
			return &cp, nil
		}
	}

	sub := &models.DocumentSubmission{
		ID:            uuid.New().String(),
		EmployeeEmail: employeeEmail,
		DocumentType:  docType,
		FileName:      fileName,
		FileURL:       fileURL,
		Status:        models.DocumentStatusUploaded,
		SubmittedAt:   now,
	}
	l.byID[sub.ID] = sub
	if l.byType[employeeEmail] == nil {
		l.byType[employeeEmail] = make(map[string]string)
	}
	l.byType[employeeEmail][docType] = sub.ID

	cp := *sub
	return &cp, nil
}

func (l *MemoryDocumentLedger) MarkVerified(_ context.Context, submissionID, verifiedBy, status string) (*models.DocumentSubmission, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sub, ok := l.byID[submissionID]
	if !ok {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	sub.Status = status
	sub.VerifiedAt = &now
	sub.VerifiedBy = verifiedBy

	cp := *sub
	return &cp, nil
}

func (l *MemoryDocumentLedger) UploadedCount(_ context.Context, employeeEmail string) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, id := range l.byType[employeeEmail] {
		if l.byID[id].IsUploaded() {
			count++
		}
	}
	return count, nil
}

func (l *MemoryDocumentLedger) Submissions(_ context.Context, employeeEmail string) ([]models.DocumentSubmission, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var subs []models.DocumentSubmission
	for _, docType := range models.RequiredDocuments {
		if id, ok := l.byType[employeeEmail][docType]; ok {
			subs = append(subs, *l.byID[id])
		}
	}
	return subs, nil
}

// MemoryTrainingLedger is an in-memory TrainingLedger. New employees get the
// full curriculum seeded on first touch.
type MemoryTrainingLedger struct {
	mu sync.RWMutex
	// employee email -> module name -> record
	records map[string]map[string]*models.TrainingRecord
}

func NewMemoryTrainingLedger() *MemoryTrainingLedger {
	return &MemoryTrainingLedger{
		records: make(map[string]map[string]*models.TrainingRecord),
	}
}

func (l *MemoryTrainingLedger) seedLocked(employeeEmail string) {
	if l.records[employeeEmail] != nil {
		return
	}
	mods := make(map[string]*models.TrainingRecord, models.CurriculumSize)
	for _, m := range models.Curriculum {
		mods[m.Name] = &models.TrainingRecord{
			ID:            uuid.New().String(),
			EmployeeEmail: employeeEmail,
			ModuleName:    m.Name,
			Status:        models.TrainingStatusNotStarted,
			Progress:      0,
			ResourceURL:   DefaultModuleResources[m.Name],
		}
	}
	l.records[employeeEmail] = mods
}

// Seed pre-creates the curriculum rows, mirroring the Postgres ledger.
func (l *MemoryTrainingLedger) Seed(_ context.Context, employeeEmail string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seedLocked(employeeEmail)
	return nil
}

// SetResourceURL overrides a module's resource link. Test helper.
func (l *MemoryTrainingLedger) SetResourceURL(employeeEmail, moduleName, url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seedLocked(employeeEmail)
	if rec, ok := l.records[employeeEmail][moduleName]; ok {
		rec.ResourceURL = url
	}
}

func (l *MemoryTrainingLedger) Start(_ context.Context, employeeEmail, moduleName string) (*models.TrainingRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seedLocked(employeeEmail)

	rec, ok := l.records[employeeEmail][moduleName]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.Status != models.TrainingStatusNotStarted {
		cp := *rec
		return &cp, nil
	}
	if rec.ResourceURL == "" {
		return nil, ErrResourceMissing
	}

	now := time.Now().UTC()
	rec.Status = models.TrainingStatusInProgress
	rec.Progress = 20
	rec.StartedAt = &now

	cp := *rec
	return &cp, nil
}

func (l *MemoryTrainingLedger) Complete(_ context.Context, employeeEmail, moduleName string) (*models.TrainingRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seedLocked(employeeEmail)

	rec, ok := l.records[employeeEmail][moduleName]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.Status == models.TrainingStatusCompleted {
		cp := *rec
		return &cp, nil
	}
	if rec.Status != models.TrainingStatusInProgress {
		return nil, ErrNotInProgress
	}

	now := time.Now().UTC()
	rec.Status = models.TrainingStatusCompleted
	rec.Progress = 100
	rec.CompletedAt = &now

	cp := *rec
	return &cp, nil
}

func (l *MemoryTrainingLedger) Record(_ context.Context, employeeEmail, moduleName string) (*models.TrainingRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seedLocked(employeeEmail)

	rec, ok := l.records[employeeEmail][moduleName]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (l *MemoryTrainingLedger) CompletedCount(_ context.Context, employeeEmail string) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, rec := range l.records[employeeEmail] {
		if rec.Status == models.TrainingStatusCompleted {
			count++
		}
	}
	return count, nil
}

func (l *MemoryTrainingLedger) Records(_ context.Context, employeeEmail string) ([]models.TrainingRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.TrainingRecord
	for _, m := range models.Curriculum {
		if rec, ok := l.records[employeeEmail][m.Name]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// MemoryEmployeeStore is an in-memory EmployeeStore keyed by email.
type MemoryEmployeeStore struct {
	mu       sync.RWMutex
	accounts map[string]*models.EmployeeAccount
	profiles map[string]*models.EmployeeProfile
}

func NewMemoryEmployeeStore() *MemoryEmployeeStore {
	return &MemoryEmployeeStore{
		accounts: make(map[string]*models.EmployeeAccount),
		profiles: make(map[string]*models.EmployeeProfile),
	}
}

func (s *MemoryEmployeeStore) CreateAccount(_ context.Context, account *models.EmployeeAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *account
	s.accounts[account.Email] = &cp
	return nil
}

func (s *MemoryEmployeeStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[email]
	return ok, nil
}

func (s *MemoryEmployeeStore) Account(_ context.Context, email string) (*models.EmployeeAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *account
	return &cp, nil
}

// SetProfile attaches portal profile fields to an account. Test helper.
func (s *MemoryEmployeeStore) SetProfile(profile *models.EmployeeProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *profile
	s.profiles[profile.Email] = &cp
}

func (s *MemoryEmployeeStore) Profile(_ context.Context, email string) (*models.EmployeeProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.profiles[email]; ok {
		cp := *p
		return &cp, nil
	}
	account, ok := s.accounts[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &models.EmployeeProfile{
		Email:        account.Email,
		Name:         account.FullName(),
		Department:   account.Department,
		Position:     account.Position,
		Manager:      account.Manager,
		WorkLocation: account.WorkLocation,
		StartDate:    account.StartDate,
	}, nil
}

func (s *MemoryEmployeeStore) SaveProgress(_ context.Context, email string, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[email]
	if !ok {
		return ErrNotFound
	}
	account.Progress = progress
	return nil
}
