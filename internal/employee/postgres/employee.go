package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/employee-directory/internal/core/database"
	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-directory/internal/employee"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

var _ employee.Repository = (*EmployeeRepository)(nil)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// conn joins the caller's transaction when there is one.
func (r *EmployeeRepository) conn(ctx context.Context) *gorm.DB {
	return database.DBFromContext(ctx, r.db)
}

func (r *EmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	model := employee.ToDataModel(emp)
	model.ID = 0
	if err := r.conn(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	*emp = *employee.FromDataModel(model)
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employee.Employee, error) {
	var model employeeDatamodel.Employee
	err := r.conn(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return employee.FromDataModel(&model), nil
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	var model employeeDatamodel.Employee
	err := r.conn(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return employee.FromDataModel(&model), nil
}

// Update writes every editable column of an existing row. It never inserts.
func (r *EmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	now := time.Now()
	result := r.conn(ctx).Model(&employeeDatamodel.Employee{}).
		Where("id = ?", emp.ID).
		Updates(map[string]interface{}{
			"first_name":   emp.FirstName,
			"last_name":    emp.LastName,
			"email":        emp.Email,
			"phone_number": emp.PhoneNumber,
			"department":   emp.Department,
			"position":     emp.Position,
			"hire_date":    emp.HireDate,
			"salary":       emp.Salary,
			"status":       string(emp.Status),
			"updated_at":   now,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return employee.ErrEmployeeNotFound
	}
	emp.UpdatedAt = now
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	result := r.conn(ctx).Where("id = ?", id).Delete(&employeeDatamodel.Employee{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*employee.Employee, error) {
	var models []*employeeDatamodel.Employee
	if err := r.conn(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	employees := make([]*employee.Employee, 0, len(models))
	for _, m := range models {
		employees = append(employees, employee.FromDataModel(m))
	}
	return employees, nil
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&employeeDatamodel.Employee{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteAll empties the table. Only the seeder uses it.
func (r *EmployeeRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.conn(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&employeeDatamodel.Employee{})
	return result.RowsAffected, result.Error
}

// translateError maps driver failures onto the domain sentinels. The only
// unique index besides the primary key is the email index.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employee.ErrEmployeeNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return employee.ErrEmailConflict
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return employee.ErrEmailConflict
	}
	return err
}
