package pgsql

import (
	"context"

	"github.com/SscSPs/crew_planner/internal/apperrors"
	"github.com/SscSPs/crew_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeSelect = `
SELECT employee_id, organization_id, depot_id, name, status, job_role,
       created_at, created_by, last_updated_at, last_updated_by, version
FROM employees
`

func (r *PgxEmployeeRepository) getEmployees(ctx context.Context, filterQuery string, args ...any) ([]domain.Employee, error) {
	rows, err := r.Pool.Query(ctx, employeeSelect+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees", err)
	}
	defer rows.Close()

	employees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Employee, error) {
		var e domain.Employee
		err := row.Scan(&e.EmployeeID, &e.OrganizationID, &e.DepotID, &e.Name, &e.Status, &e.JobRole,
			&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy, &e.Version)
		return e, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect employee rows", err)
	}
	return employees, nil
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO employees (
			employee_id, organization_id, depot_id, name, status, job_role,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		employee.EmployeeID, employee.OrganizationID, employee.DepotID, employee.Name, employee.Status, employee.JobRole,
		employee.CreatedAt, employee.CreatedBy, employee.LastUpdatedAt, employee.LastUpdatedBy, employee.Version,
	)
	if err != nil {
		return mapWriteError(err, "employee "+employee.EmployeeID)
	}
	return nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, organizationID, employeeID string) (*domain.Employee, error) {
	employees, err := r.getEmployees(ctx, `WHERE organization_id = $1 AND employee_id = $2`, organizationID, employeeID)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, apperrors.NewNotFoundError("employee " + employeeID)
	}
	return &employees[0], nil
}

func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, organizationID string, depotID *string) ([]domain.Employee, error) {
	return r.getEmployees(ctx, `
		WHERE organization_id = $1 AND ($2::text IS NULL OR depot_id = $2)
		ORDER BY name`,
		organizationID, depotID,
	)
}

func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE employees
		SET depot_id = $3, name = $4, status = $5, job_role = $6,
		    last_updated_at = $7, last_updated_by = $8, version = version + 1
		WHERE organization_id = $1 AND employee_id = $2 AND version = $9;`,
		employee.OrganizationID, employee.EmployeeID, employee.DepotID, employee.Name, employee.Status, employee.JobRole,
		employee.LastUpdatedAt, employee.LastUpdatedBy, employee.Version,
	)
	if err != nil {
		return mapWriteError(err, "employee "+employee.EmployeeID)
	}
	return expectOne(tag, "employee "+employee.EmployeeID)
}

func (r *PgxEmployeeRepository) DeleteEmployee(ctx context.Context, organizationID, employeeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM employees WHERE organization_id = $1 AND employee_id = $2;`, organizationID, employeeID)
	if err != nil {
		return mapDeleteError(err, "employee "+employeeID)
	}
	return expectOne(tag, "employee "+employeeID)
}
