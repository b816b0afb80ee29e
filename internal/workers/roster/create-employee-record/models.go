// internal/workers/roster/create-employee-record/models.go
package createemployeerecord

type Input struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Department   string `json:"department,omitempty"`
	Position     string `json:"position,omitempty"`
	Manager      string `json:"manager,omitempty"`
	WorkLocation string `json:"workLocation,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	CreatedBy    string `json:"createdBy,omitempty"`
}

type Output struct {
	EmployeeID       string `json:"employeeId"`
	Email            string `json:"email"`
	FullName         string `json:"fullName"`
	CreatedAt        string `json:"createdAt"`
	NotificationType string `json:"notificationType"`
}
