package employee

import (
	"fmt"
	"strings"
	"time"

	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusTerminated Status = "TERMINATED"
	StatusOnLeave    Status = "ON_LEAVE"
)

// Statuses lists every status in declaration order.
var Statuses = []Status{StatusActive, StatusInactive, StatusTerminated, StatusOnLeave}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusTerminated, StatusOnLeave:
		return true
	}
	return false
}

func (s Status) DisplayName() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	case StatusTerminated:
		return "Terminated"
	case StatusOnLeave:
		return "On Leave"
	}
	return string(s)
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus accepts the canonical names in any letter case.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown employee status %q", raw)
	}
	return s, nil
}

func StatusNames() []string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return names
}

type Employee struct {
	ID          int64           `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phone_number"`
	Department  string          `json:"department"`
	Position    string          `json:"position"`
	HireDate    time.Time       `json:"hire_date"`
	Salary      decimal.Decimal `json:"salary"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		FullName:      e.FullName(),
		Email:         e.Email,
		PhoneNumber:   e.PhoneNumber,
		Department:    e.Department,
		Position:      e.Position,
		HireDate:      e.HireDate.Format(DateLayout),
		Salary:        e.Salary,
		Status:        e.Status,
		StatusDisplay: e.Status.DisplayName(),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
		Department:  e.Department,
		Position:    e.Position,
		HireDate:    e.HireDate,
		Salary:      employeeDatamodel.NewSalary(e.Salary),
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
		Department:  e.Department,
		Position:    e.Position,
		HireDate:    e.HireDate,
		Salary:      e.Salary.Decimal,
		Status:      Status(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
