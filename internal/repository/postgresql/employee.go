package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dawamhq/attendance-engine-go/internal/domain/employee"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/arabic"
	"github.com/dawamhq/attendance-engine-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	code, full_name, shift_start, hire_date, termination_date,
	department, sector, section, branch, created_at, updated_at
`

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	row := q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE code = $1`,
		arabic.NormalizeCode(code),
	)
	emp, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	emp.Code = arabic.NormalizeCode(emp.Code)

	query := `
		INSERT INTO employees (
			id, code, full_name, shift_start, hire_date, termination_date,
			department, sector, section, branch
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		emp.Code,
		emp.FullName,
		emp.ShiftStart,
		emp.HireDate,
		emp.TerminationDate,
		emp.Department,
		emp.Sector,
		emp.Section,
		emp.Branch,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return emp, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.Code, &emp.FullName, &emp.ShiftStart, &emp.HireDate, &emp.TerminationDate,
		&emp.Department, &emp.Sector, &emp.Section, &emp.Branch, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to scan employee: %w", err)
	}
	return emp, nil
}
