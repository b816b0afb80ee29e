// internal/ledger/employee.go
package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/models"
)

// PostgresEmployeeStore persists roster accounts in the employee_accounts
// table.
type PostgresEmployeeStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresEmployeeStore(db *sql.DB, log logger.Logger) *PostgresEmployeeStore {
	return &PostgresEmployeeStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "employee-store"}),
	}
}

func (s *PostgresEmployeeStore) CreateAccount(ctx context.Context, account *models.EmployeeAccount) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employee_accounts (
			id, first_name, last_name, email, phone, department, position,
			manager, work_location, start_date, progress, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		account.ID, account.FirstName, account.LastName, account.Email,
		account.Phone, account.Department, account.Position, account.Manager,
		account.WorkLocation, account.StartDate, account.Progress,
		account.CreatedBy, account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employee account: %w", err)
	}
	return nil
}

func (s *PostgresEmployeeStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM employee_accounts WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("employee lookup: %w", err)
	}
	return exists, nil
}

func (s *PostgresEmployeeStore) Account(ctx context.Context, email string) (*models.EmployeeAccount, error) {
	var a models.EmployeeAccount
	var phone, department, position, manager, workLocation, startDate, createdBy sql.NullString
	var updatedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, phone, department, position,
		       manager, work_location, start_date, progress, created_by, created_at, updated_at
		FROM employee_accounts WHERE email = $1`,
		email,
	).Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &phone, &department,
		&position, &manager, &workLocation, &startDate, &a.Progress,
		&createdBy, &a.CreatedAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load employee account: %w", err)
	}

	a.Phone = phone.String
	a.Department = department.String
	a.Position = position.String
	a.Manager = manager.String
	a.WorkLocation = workLocation.String
	a.StartDate = startDate.String
	a.CreatedBy = createdBy.String
	if updatedAt.Valid {
		t := updatedAt.Time
		a.UpdatedAt = &t
	}

	return &a, nil
}

func (s *PostgresEmployeeStore) Profile(ctx context.Context, email string) (*models.EmployeeProfile, error) {
	var p models.EmployeeProfile
	var name, picture, department, position, manager, workLocation, startDate sql.NullString
	var updatedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, `
		SELECT e.email,
		       TRIM(CONCAT(e.first_name, ' ', e.last_name)),
		       p.profile_picture_url, e.department, e.position, e.manager,
		       e.work_location, e.start_date, p.updated_at
		FROM employee_accounts e
		LEFT JOIN employee_profiles p ON p.email = e.email
		WHERE e.email = $1`,
		email,
	).Scan(&p.Email, &name, &picture, &department, &position, &manager,
		&workLocation, &startDate, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load employee profile: %w", err)
	}

	p.Name = name.String
	p.ProfilePictureURL = picture.String
	p.Department = department.String
	p.Position = position.String
	p.Manager = manager.String
	p.WorkLocation = workLocation.String
	p.StartDate = startDate.String
	if updatedAt.Valid {
		t := updatedAt.Time
		p.UpdatedAt = &t
	}

	return &p, nil
}

func (s *PostgresEmployeeStore) SaveProgress(ctx context.Context, email string, progress int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE employee_accounts SET progress = $1, updated_at = NOW()
		WHERE email = $2`,
		progress, email,
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
