package employee

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type Employee struct {
	ID          int64     `gorm:"primaryKey"`
	FirstName   string    `gorm:"column:first_name;not null"`
	LastName    string    `gorm:"column:last_name;not null"`
	Email       string    `gorm:"column:email;uniqueIndex;not null"`
	PhoneNumber string    `gorm:"column:phone_number"`
	Department  string    `gorm:"column:department;index;not null"`
	Position    string    `gorm:"column:position;index;not null"`
	HireDate    time.Time `gorm:"column:hire_date;type:date;not null"`
	Salary      Salary    `gorm:"column:salary;not null;check:chk_employees_salary,salary >= 0"`
	Status      string    `gorm:"column:status;size:20;not null;check:chk_employees_status,status IN ('ACTIVE','INACTIVE','TERMINATED','ON_LEAVE')"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

// Salary is an exact decimal column. SQLite has no exact numeric storage and
// would coerce numeric(12,2) values to REAL, so there it is kept as TEXT.
type Salary struct {
	decimal.Decimal
}

func NewSalary(d decimal.Decimal) Salary {
	return Salary{Decimal: d}
}

func (Salary) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return "numeric(12,2)"
}
