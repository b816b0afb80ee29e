// internal/workers/data-access/query-onboarding/queries/admin.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

func PendingDocuments(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT s.id, s.employee_email, s.document_type, s.file_name, s.submitted_at,
		       e.first_name, e.last_name
		FROM document_submissions s
		JOIN employee_accounts e ON e.email = s.employee_email
		WHERE s.status = 'uploaded'
		ORDER BY s.submitted_at`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, employeeEmail, documentType, fileName, firstName, lastName string
		var submittedAt time.Time
		if err := rows.Scan(&id, &employeeEmail, &documentType, &fileName, &submittedAt, &firstName, &lastName); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"submissionId":  id,
			"employeeEmail": employeeEmail,
			"employeeName":  firstName + " " + lastName,
			"documentType":  documentType,
			"fileName":      fileName,
			"submittedAt":   submittedAt.Format(time.RFC3339),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func OnboardingStats(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	var total, completed int
	var avgProgress sql.NullFloat64

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(AVG(progress), 0),
		       COUNT(*) FILTER (WHERE progress = 100)
		FROM employee_accounts`).Scan(&total, &avgProgress, &completed)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"totalEmployees":  total,
		"averageProgress": avgProgress.Float64,
		"completedCount":  completed,
		"inProgressCount": total - completed,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func TrainingOverview(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT module_name,
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'in-progress'),
		       COUNT(*)
		FROM training_progress
		GROUP BY module_name
		ORDER BY module_name`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var moduleName string
		var completedCount, inProgressCount, totalCount int
		if err := rows.Scan(&moduleName, &completedCount, &inProgressCount, &totalCount); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"moduleName":      moduleName,
			"completedCount":  completedCount,
			"inProgressCount": inProgressCount,
			"totalCount":      totalCount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
