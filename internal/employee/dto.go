package employee

import (
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// Salaries are stored as numeric(12,2).
const (
	salaryDigits = 12
	salaryScale  = 2
)

// EmployeeRequest is the body of create and update calls.
type EmployeeRequest struct {
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Email       string           `json:"email"`
	PhoneNumber string           `json:"phone_number"`
	Department  string           `json:"department"`
	Position    string           `json:"position"`
	HireDate    string           `json:"hire_date"`
	Salary      *decimal.Decimal `json:"salary"`
	Status      string           `json:"status"`
}

func (r EmployeeRequest) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("first_name", r.FirstName).Required().MaxLength(100)
	v.Field("last_name", r.LastName).Required().MaxLength(100)
	v.Field("email", r.Email).Required().MaxLength(255).Email()
	v.Field("phone_number", r.PhoneNumber).MaxLength(50)
	v.Field("department", r.Department).Required().MaxLength(100)
	v.Field("position", r.Position).Required().MaxLength(100)
	v.Field("hire_date", r.HireDate).Required().Date(DateLayout)
	v.Field("salary", r.Salary).Required().NonNegative().Scale(salaryScale).Precision(salaryDigits, salaryScale)
	v.Field("status", strings.ToUpper(strings.TrimSpace(r.Status))).OneOf(internal.ErrCodeInvalidStatus, StatusNames()...)
	return v.Validate()
}

// ToEmployee converts a validated request. Status defaults to ACTIVE.
func (r EmployeeRequest) ToEmployee() (*Employee, *internal.AppError) {
	hireDate, err := time.Parse(DateLayout, r.HireDate)
	if err != nil {
		return nil, internal.NewValidationFieldError("hire_date", "hire_date must be a date in "+DateLayout+" format", internal.ErrCodeInvalidDate)
	}

	status := StatusActive
	if strings.TrimSpace(r.Status) != "" {
		parsed, err := ParseStatus(r.Status)
		if err != nil {
			return nil, internal.NewValidationFieldError("status", err.Error(), internal.ErrCodeInvalidStatus)
		}
		status = parsed
	}

	var salary decimal.Decimal
	if r.Salary != nil {
		salary = *r.Salary
	}

	return &Employee{
		FirstName:   strings.TrimSpace(r.FirstName),
		LastName:    strings.TrimSpace(r.LastName),
		Email:       strings.TrimSpace(r.Email),
		PhoneNumber: strings.TrimSpace(r.PhoneNumber),
		Department:  strings.TrimSpace(r.Department),
		Position:    strings.TrimSpace(r.Position),
		HireDate:    hireDate,
		Salary:      salary,
		Status:      status,
	}, nil
}

// ParseSearchCriteria reads keyword, department, position, status, minSalary
// and maxSalary from a query string. Blank values are absent. Status is only
// read when no keyword, department or position outranks it, so an unknown
// status next to one of those is ignored like any other unused criterion.
func ParseSearchCriteria(query url.Values) (SearchCriteria, *internal.AppError) {
	criteria := SearchCriteria{
		Keyword:    optional(query.Get("keyword")),
		Department: optional(query.Get("department")),
		Position:   optional(query.Get("position")),
	}

	outranked := criteria.Keyword != nil || criteria.Department != nil || criteria.Position != nil
	if raw := optional(query.Get("status")); raw != nil && !outranked {
		status, err := ParseStatus(*raw)
		if err != nil {
			return SearchCriteria{}, internal.NewValidationFieldError("status", err.Error(), internal.ErrCodeInvalidStatus)
		}
		criteria.Status = &status
	}

	for _, bound := range []struct {
		name   string
		target **decimal.Decimal
	}{
		{"minSalary", &criteria.MinSalary},
		{"maxSalary", &criteria.MaxSalary},
	} {
		raw := optional(query.Get(bound.name))
		if raw == nil {
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(*raw))
		if err != nil {
			return SearchCriteria{}, internal.NewValidationFieldError(bound.name, bound.name+" must be a decimal number", internal.ErrCodeInvalidSalary)
		}
		*bound.target = &d
	}

	return criteria, nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

type EmployeeResponse struct {
	ID            int64           `json:"id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	FullName      string          `json:"full_name"`
	Email         string          `json:"email"`
	PhoneNumber   string          `json:"phone_number,omitempty"`
	Department    string          `json:"department"`
	Position      string          `json:"position"`
	HireDate      string          `json:"hire_date"`
	Salary        decimal.Decimal `json:"salary"`
	Status        Status          `json:"status"`
	StatusDisplay string          `json:"status_display"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type EmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Count     int                `json:"count"`
}

func ToEmployeesResponse(employees []*Employee) EmployeesResponse {
	items := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		items = append(items, e.ToResponse())
	}
	return EmployeesResponse{Employees: items, Count: len(items)}
}

type DepartmentsResponse struct {
	Departments []string `json:"departments"`
}

type PositionsResponse struct {
	Positions []string `json:"positions"`
}

type DepartmentCountResponse struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type EmailExistsResponse struct {
	Email  string `json:"email"`
	Exists bool   `json:"exists"`
}
