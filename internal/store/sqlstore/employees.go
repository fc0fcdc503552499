package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/metrics"
	"github.com/qlpapp/qlp-server/internal/store"
)

const employeesTable = "employees"

// employeeColumns is the ordered list of columns selected in roster queries.
// Must match the scan order in scanEmployee.
var employeeColumns = []string{
	"cpf", "name", "area", "leader", "shift", "education", "current_title",
	"status", "protected_class", "classification", "salary", "admission_date",
	"tenure_days", "photo", "photo_hash", "actions", "updated_at",
}

// distinctColumns maps filterable fields to their column.
var distinctColumns = map[store.EmployeeField]string{
	store.FieldArea:           "area",
	store.FieldLeader:         "leader",
	store.FieldClassification: "classification",
}

// scanEmployee scans a sql.Row (or sql.Rows via its Scan method) into a domain.Employee.
func scanEmployee(scanner interface{ Scan(dest ...any) error }) (*domain.Employee, error) {
	var (
		e         domain.Employee
		actions   string
		updatedAt string
	)

	err := scanner.Scan(
		&e.CPF,
		&e.Name,
		&e.Area,
		&e.Leader,
		&e.Shift,
		&e.Education,
		&e.CurrentTitle,
		&e.Status,
		&e.ProtectedClass,
		&e.Classification,
		&e.Salary,
		&e.AdmissionDate,
		&e.TenureDays,
		&e.Photo,
		&e.PhotoHash,
		&actions,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeActions(actions, &e.Actions); err != nil {
		return nil, fmt.Errorf("decode actions of %s: %w", e.CPF, err)
	}

	e.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// decodeActions fills the fixed slots from the stored JSON array. Missing
// trailing slots stay empty; extra entries are ignored.
func decodeActions(raw string, dst *[domain.DevelopmentSlots]domain.DevelopmentAction) error {
	if raw == "" {
		return nil
	}
	var list []domain.DevelopmentAction
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return err
	}
	copy(dst[:], list)
	return nil
}

func encodeActions(actions [domain.DevelopmentSlots]domain.DevelopmentAction) (string, error) {
	b, err := json.Marshal(actions[:])
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// rosterWhere converts a roster filter into a predicate. A CPF constraint
// replaces every other constraint.
func (s *Store) rosterWhere(f domain.RosterFilter) squirrel.And {
	if f.CPF != "" {
		return squirrel.And{squirrel.Eq{"cpf": f.CPF}}
	}

	where := squirrel.And{}
	if f.Search != "" {
		where = append(where, s.dialect.containsFold("name", f.Search))
	}
	if group := domain.StatusGroup(f.Status); len(group) > 0 {
		where = append(where, squirrel.Eq{"status": group})
	}
	if f.Area != "" {
		where = append(where, squirrel.Eq{"area": f.Area})
	}
	if f.Leader != "" {
		where = append(where, squirrel.Eq{"leader": f.Leader})
	}
	if f.Classification != "" {
		where = append(where, squirrel.Eq{"classification": f.Classification})
	}
	return where
}

// ListEmployees returns one page of roster rows ordered by name and the exact
// number of rows matching the filter.
func (s *Store) ListEmployees(ctx context.Context, filter domain.RosterFilter, page store.Page) (_ []domain.Employee, _ int, err error) {
	defer func(start time.Time) { metrics.ObserveStore("list_employees", start, err) }(time.Now())

	page.Validate()
	where := s.rosterWhere(filter)

	countQuery, countArgs, err := s.sb.Select("COUNT(*)").
		From(employeesTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building count query: %w", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting employees: %w", err)
	}

	query, args, err := s.sb.Select(employeeColumns...).
		From(employeesTable).
		Where(where).
		OrderBy("name", "cpf").
		Limit(uint64(page.Size)).      //nolint:gosec // Validate keeps Size positive
		Offset(uint64(page.Offset())). //nolint:gosec // Offset is never negative after Validate
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building select query: %w", err)
	}

	employees, err := s.queryEmployees(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListEmployeesByStatus returns every row with exactly the given status.
func (s *Store) ListEmployeesByStatus(ctx context.Context, status string) (_ []domain.Employee, err error) {
	defer func(start time.Time) { metrics.ObserveStore("list_employees_by_status", start, err) }(time.Now())

	query, args, err := s.sb.Select(employeeColumns...).
		From(employeesTable).
		Where(squirrel.Eq{"status": status}).
		OrderBy("name", "cpf").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	return s.queryEmployees(ctx, query, args...)
}

func (s *Store) queryEmployees(ctx context.Context, query string, args ...any) ([]domain.Employee, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		employees = append(employees, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}

// GetEmployee retrieves a roster row by CPF.
// Returns store.ErrNotFound if no row has that CPF.
func (s *Store) GetEmployee(ctx context.Context, cpf string) (_ *domain.Employee, err error) {
	defer func(start time.Time) { metrics.ObserveStore("get_employee", start, err, store.ErrNotFound) }(time.Now())

	query, args, err := s.sb.Select(employeeColumns...).
		From(employeesTable).
		Where(squirrel.Eq{"cpf": cpf}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}

	e, err := scanEmployee(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessagef("employee %s not found", cpf)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	return e, nil
}

// UpsertEmployees inserts or replaces roster rows keyed by CPF in a single
// transaction. Stored photos are kept when a row is replaced.
func (s *Store) UpsertEmployees(ctx context.Context, employees []domain.Employee) (err error) {
	defer func(start time.Time) { metrics.ObserveStore("upsert_employees", start, err) }(time.Now())

	if len(employees) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Error("rollback failed", "error", rbErr)
			}
		}
	}()

	now := formatTime(time.Now())
	for i := range employees {
		e := &employees[i]
		if e.CPF == "" {
			return store.ErrInvalidInput.WithMessagef("row %d has no cpf", i+1)
		}

		actions, err := encodeActions(e.Actions)
		if err != nil {
			return fmt.Errorf("encode actions of %s: %w", e.CPF, err)
		}

		query, args, err := s.sb.Insert(employeesTable).
			Columns(employeeColumns...).
			Values(
				e.CPF, e.Name, e.Area, e.Leader, e.Shift, e.Education, e.CurrentTitle,
				e.Status, e.ProtectedClass, e.Classification, e.Salary, e.AdmissionDate,
				e.TenureDays, e.Photo, e.PhotoHash, actions, now,
			).
			Suffix(`ON CONFLICT (cpf) DO UPDATE SET
				name = excluded.name,
				area = excluded.area,
				leader = excluded.leader,
				shift = excluded.shift,
				education = excluded.education,
				current_title = excluded.current_title,
				status = excluded.status,
				protected_class = excluded.protected_class,
				classification = excluded.classification,
				salary = excluded.salary,
				admission_date = excluded.admission_date,
				tenure_days = excluded.tenure_days,
				actions = excluded.actions,
				updated_at = excluded.updated_at`).
			ToSql()
		if err != nil {
			return fmt.Errorf("building upsert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upserting employee %s: %w", e.CPF, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// UpdateEmployeePhoto replaces the stored photo of one employee.
// Returns store.ErrNotFound if no row has that CPF.
func (s *Store) UpdateEmployeePhoto(ctx context.Context, cpf, photo, photoHash string) (err error) {
	defer func(start time.Time) { metrics.ObserveStore("update_employee_photo", start, err, store.ErrNotFound) }(time.Now())

	query, args, err := s.sb.Update(employeesTable).
		Set("photo", photo).
		Set("photo_hash", photoHash).
		Set("updated_at", formatTime(time.Now())).
		Where(squirrel.Eq{"cpf": cpf}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating photo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound.WithMessagef("employee %s not found", cpf)
	}
	return nil
}

// DistinctEmployeeValues returns the distinct non-empty stored values of one
// filterable column. Values are returned raw and unsorted by locale.
func (s *Store) DistinctEmployeeValues(ctx context.Context, field store.EmployeeField) (_ []string, err error) {
	defer func(start time.Time) { metrics.ObserveStore("distinct_employee_values", start, err) }(time.Now())

	column, ok := distinctColumns[field]
	if !ok {
		return nil, store.ErrInvalidInput.WithMessagef("unknown employee field %q", field)
	}

	query, args, err := s.sb.Select(column).
		Distinct().
		From(employeesTable).
		Where(squirrel.NotEq{column: ""}).
		OrderBy(column).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building distinct query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s values: %w", column, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning %s value: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s values: %w", column, err)
	}
	return values, nil
}
