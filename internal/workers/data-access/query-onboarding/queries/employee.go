// internal/workers/data-access/query-onboarding/queries/employee.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

func EmployeeRoster(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	query := `
		SELECT id, first_name, last_name, email, department, position, progress, start_date
		FROM employee_accounts`
	args := []interface{}{}

	if filters, ok := params["filters"].(map[string]interface{}); ok {
		if dept, ok := filters["department"].(string); ok && dept != "" {
			query += ` WHERE department = $1`
			args = append(args, dept)
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, firstName, lastName, email string
		var department, position, startDate sql.NullString
		var progress int
		if err := rows.Scan(&id, &firstName, &lastName, &email, &department, &position, &progress, &startDate); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":         id,
			"firstName":  firstName,
			"lastName":   lastName,
			"email":      email,
			"department": department.String,
			"position":   position.String,
			"progress":   progress,
			"startDate":  startDate.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func EmployeeDetail(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	email, ok := params["employeeEmail"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, firstName, lastName string
	var phone, department, position, manager, workLocation, startDate sql.NullString
	var progress int

	err := db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, phone, department, position, manager, work_location, start_date, progress
		FROM employee_accounts
		WHERE email = $1`, email).Scan(
		&id, &firstName, &lastName, &phone, &department,
		&position, &manager, &workLocation, &startDate, &progress,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":           id,
		"firstName":    firstName,
		"lastName":     lastName,
		"email":        email,
		"phone":        phone.String,
		"department":   department.String,
		"position":     position.String,
		"manager":      manager.String,
		"workLocation": workLocation.String,
		"startDate":    startDate.String,
		"progress":     progress,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}
