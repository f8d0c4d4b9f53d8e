package employee

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"

	"github.com/frahmantamala/employee-directory/pkg/logger"
)

// Repository is the record store. GetByID, GetByEmail, Update and Delete
// return ErrEmployeeNotFound for unknown records; Create and Update return
// ErrEmailConflict when the unique email index rejects a write.
type Repository interface {
	Create(ctx context.Context, employee *Employee) error
	GetByID(ctx context.Context, id int64) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	Update(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]*Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// Service owns the directory rules: unique emails, not-found reporting and
// search precedence.
type Service struct {
	repo   Repository
	tx     TransactionManager
	logger *slog.Logger
}

func NewService(repo Repository, tx TransactionManager, lg *slog.Logger) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &Service{
		repo:   repo,
		tx:     tx,
		logger: lg,
	}
}

// CreateEmployee stores a new employee. Any id on the candidate is ignored
// and an empty status becomes ACTIVE.
func (s *Service) CreateEmployee(ctx context.Context, candidate *Employee) (*Employee, error) {
	if candidate == nil {
		return nil, errors.New("employee: candidate is required")
	}

	emp := *candidate
	emp.ID = 0
	if emp.Status == "" {
		emp.Status = StatusActive
	}

	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		exists, err := s.repo.ExistsByEmail(txCtx, emp.Email)
		if err != nil {
			return err
		}
		if exists {
			return emailConflict(emp.Email)
		}

		if err := s.repo.Create(txCtx, &emp); err != nil {
			if errors.Is(err, ErrEmailConflict) {
				return emailConflict(emp.Email)
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "failed to create employee", err, "email", emp.Email)
		return nil, err
	}

	s.log(ctx).Info("employee created", "employee_id", emp.ID, "department", emp.Department)
	return &emp, nil
}

func (s *Service) GetEmployeeByID(ctx context.Context, id int64) (*Employee, error) {
	var emp *Employee
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, ErrEmployeeNotFound) {
				return notFoundByID(id)
			}
			return err
		}
		emp = found
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "failed to get employee", err, "employee_id", id)
		return nil, err
	}
	return emp, nil
}

func (s *Service) GetEmployeeByEmail(ctx context.Context, email string) (*Employee, error) {
	var emp *Employee
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.GetByEmail(txCtx, email)
		if err != nil {
			if errors.Is(err, ErrEmployeeNotFound) {
				return notFoundByEmail(email)
			}
			return err
		}
		emp = found
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "failed to get employee by email", err, "email", email)
		return nil, err
	}
	return emp, nil
}

// UpdateEmployee replaces every editable field of the stored record with the
// values in details. The id and creation time are kept and an empty status
// becomes ACTIVE.
func (s *Service) UpdateEmployee(ctx context.Context, id int64, details *Employee) (*Employee, error) {
	if details == nil {
		return nil, errors.New("employee: update details are required")
	}

	var updated *Employee
	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, ErrEmployeeNotFound) {
				return notFoundByID(id)
			}
			return err
		}

		if existing.Email != details.Email {
			exists, err := s.repo.ExistsByEmail(txCtx, details.Email)
			if err != nil {
				return err
			}
			if exists {
				return emailConflict(details.Email)
			}
		}

		next := *existing
		next.FirstName = details.FirstName
		next.LastName = details.LastName
		next.Email = details.Email
		next.PhoneNumber = details.PhoneNumber
		next.Department = details.Department
		next.Position = details.Position
		next.HireDate = details.HireDate
		next.Salary = details.Salary
		next.Status = details.Status
		if next.Status == "" {
			next.Status = StatusActive
		}

		if err := s.repo.Update(txCtx, &next); err != nil {
			switch {
			case errors.Is(err, ErrEmployeeNotFound):
				return notFoundByID(id)
			case errors.Is(err, ErrEmailConflict):
				return emailConflict(details.Email)
			}
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "failed to update employee", err, "employee_id", id)
		return nil, err
	}

	s.log(ctx).Info("employee updated", "employee_id", id)
	return updated, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByID(txCtx, id); err != nil {
			if errors.Is(err, ErrEmployeeNotFound) {
				return notFoundByID(id)
			}
			return err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			if errors.Is(err, ErrEmployeeNotFound) {
				return notFoundByID(id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "failed to delete employee", err, "employee_id", id)
		return err
	}

	s.log(ctx).Info("employee deleted", "employee_id", id)
	return nil
}

// SearchEmployees applies exactly one filter, chosen by SearchCriteria.Rule,
// and returns matches in id order.
func (s *Service) SearchEmployees(ctx context.Context, criteria SearchCriteria) ([]*Employee, error) {
	rule := criteria.Rule()
	match := criteria.Matcher()

	result := make([]*Employee, 0)
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		all, err := s.repo.GetAll(txCtx)
		if err != nil {
			return err
		}
		for _, emp := range all {
			if match(emp) {
				result = append(result, emp)
			}
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "failed to search employees", err, "rule", rule)
		return nil, err
	}

	s.log(ctx).Debug("employees searched", "rule", rule, "count", len(result))
	return result, nil
}

func (s *Service) GetAllDepartments(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "departments", func(e *Employee) string { return e.Department })
}

func (s *Service) GetAllPositions(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "positions", func(e *Employee) string { return e.Position })
}

func (s *Service) distinct(ctx context.Context, what string, field func(*Employee) string) ([]string, error) {
	seen := make(map[string]struct{})
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		all, err := s.repo.GetAll(txCtx)
		if err != nil {
			return err
		}
		for _, emp := range all {
			seen[field(emp)] = struct{}{}
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "failed to list "+what, err)
		return nil, err
	}
	return slices.Sorted(maps.Keys(seen)), nil
}

// GetEmployeeCountByDepartment counts exact department matches. Unknown
// departments count zero.
func (s *Service) GetEmployeeCountByDepartment(ctx context.Context, department string) (int64, error) {
	var count int64
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		all, err := s.repo.GetAll(txCtx)
		if err != nil {
			return err
		}
		for _, emp := range all {
			if emp.Department == department {
				count++
			}
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "failed to count employees", err, "department", department)
		return 0, err
	}
	return count, nil
}

func (s *Service) EmployeeExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.ExistsByEmail(txCtx, email)
		exists = found
		return err
	})
	if err != nil {
		s.logFailure(ctx, "failed to check employee email", err, "email", email)
		return false, err
	}
	return exists, nil
}

// log prefers the request-scoped logger so request ids travel with entries.
func (s *Service) log(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l := logger.From(ctx); l != nil && l != logger.LoggerWrapper() {
			return l
		}
	}
	return s.logger
}

// logFailure keeps expected outcomes (not found, conflict) at warn level.
func (s *Service) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrEmailConflict) {
		s.log(ctx).Warn(msg, args...)
		return
	}
	s.log(ctx).Error(msg, args...)
}

