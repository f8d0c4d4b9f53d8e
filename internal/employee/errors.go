package employee

import (
	"fmt"

	"github.com/frahmantamala/employee-directory/internal"
)

var (
	ErrEmployeeNotFound = internal.ErrEmployeeNotFound
	ErrEmailConflict    = internal.ErrEmailConflict
)

func notFoundByID(id int64) error {
	return internal.NewNotFoundError(fmt.Sprintf("Employee not found with id: %d", id), internal.ErrCodeEmployeeNotFound).
		WithDetails(map[string]interface{}{"id": id})
}

func notFoundByEmail(email string) error {
	return internal.NewNotFoundError(fmt.Sprintf("Employee not found with email: %s", email), internal.ErrCodeEmployeeNotFound).
		WithDetails(map[string]interface{}{"email": email})
}

func emailConflict(email string) error {
	return internal.NewConflictError(fmt.Sprintf("Employee with email %s already exists", email), internal.ErrCodeEmailConflict).
		WithDetails(map[string]interface{}{"email": email})
}
