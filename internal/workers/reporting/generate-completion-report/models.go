// internal/workers/reporting/generate-completion-report/models.go
package generatecompletionreport

type Input struct {
	EmployeeEmail string `json:"employeeEmail"`
}

type Output struct {
	Report   string `json:"report"`
	FileName string `json:"reportFileName"`
}
