package employee

import (
	"context"
)

type EmployeeRepository interface {
	// List returns all employees in the directory.
	List(ctx context.Context) ([]Employee, error)

	// GetByCode retrieves an employee by normalized code.
	GetByCode(ctx context.Context, code string) (Employee, error)

	// Create inserts a new employee record.
	Create(ctx context.Context, emp Employee) (Employee, error)
}
