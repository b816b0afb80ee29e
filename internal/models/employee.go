// internal/models/employee.go
package models

import (
	"context"
	"time"
)

// EmployeeAccount is a roster row created by an admin for a new hire.
type EmployeeAccount struct {
	ID           string     `json:"id" db:"id"`
	FirstName    string     `json:"firstName" db:"first_name"`
	LastName     string     `json:"lastName" db:"last_name"`
	Email        string     `json:"email" db:"email"`
	Phone        string     `json:"phone,omitempty" db:"phone"`
	Department   string     `json:"department,omitempty" db:"department"`
	Position     string     `json:"position,omitempty" db:"position"`
	Manager      string     `json:"manager,omitempty" db:"manager"`
	WorkLocation string     `json:"workLocation,omitempty" db:"work_location"`
	StartDate    string     `json:"startDate,omitempty" db:"start_date"`
	Progress     int        `json:"progress" db:"progress"`
	CreatedBy    string     `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// FullName joins first and last name, tolerating either being empty.
func (e *EmployeeAccount) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	default:
		return e.FirstName + " " + e.LastName
	}
}

// EmployeeProfile holds the self-service profile fields shown in the portal.
// Name and email come from the account; the picture is optional.
type EmployeeProfile struct {
	Email             string     `json:"email" db:"email"`
	Name              string     `json:"name" db:"name"`
	ProfilePictureURL string     `json:"profilePictureUrl,omitempty" db:"profile_picture_url"`
	Department        string     `json:"department,omitempty" db:"department"`
	Position          string     `json:"position,omitempty" db:"position"`
	Manager           string     `json:"manager,omitempty" db:"manager"`
	WorkLocation      string     `json:"workLocation,omitempty" db:"work_location"`
	StartDate         string     `json:"startDate,omitempty" db:"start_date"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// HasAvatar reports whether a profile picture has been set.
func (p *EmployeeProfile) HasAvatar() bool {
	return p.ProfilePictureURL != ""
}

// EmployeeStore persists roster accounts and their overall progress.
type EmployeeStore interface {
	CreateAccount(ctx context.Context, account *EmployeeAccount) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Account(ctx context.Context, email string) (*EmployeeAccount, error)
	Profile(ctx context.Context, email string) (*EmployeeProfile, error)
	SaveProgress(ctx context.Context, email string, progress int) error
}
