package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in_at, a.check_out_at,
	a.status, a.total_hours, a.created_at, a.updated_at,
	e.employee_code, e.full_name, e.department`

type attendanceRepository struct {
	db       database.Querier
	location *time.Location
}

// NewAttendanceRepository returns the record store. Stored civil dates are
// read back as midnight in location.
func NewAttendanceRepository(db database.Querier, location *time.Location) attendance.AttendanceRepository {
	return &attendanceRepository{db: db, location: location}
}

// FindOne implements attendance.AttendanceRepository.
func (r *attendanceRepository) FindOne(ctx context.Context, employeeID string, day time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		  AND a.date = $2::date
		LIMIT 1
	`

	att, err := r.scan(q.QueryRow(ctx, query, employeeID, calendar.DateKey(day)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if code, _ := pgErrorCode(err); code == invalidTextCode {
			return nil, nil
		}
		return nil, storeError("find attendance", err)
	}

	return &att, nil
}

// FindRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) FindRange(ctx context.Context, employeeIDs []string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	where := "a.date BETWEEN $1::date AND $2::date"
	args := []interface{}{calendar.DateKey(start), calendar.DateKey(end)}
	if employeeIDs != nil {
		where += " AND a.employee_id::text = ANY($3::text[])"
		args = append(args, employeeIDs)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + where + `
		ORDER BY a.date ASC, e.employee_code ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("query attendance range", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		att, err := r.scan(rows)
		if err != nil {
			return nil, storeError("scan attendance", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate attendance range", err)
	}

	return records, nil
}

// CreateIfAbsent implements attendance.AttendanceRepository.
func (r *attendanceRepository) CreateIfAbsent(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO attendances (id, employee_id, date, check_in_at, status)
			VALUES ($1, $2, $3::date, $4, $5)
			ON CONFLICT (employee_id, date) DO NOTHING
			RETURNING id, employee_id, date, check_in_at, check_out_at, status, total_hours, created_at, updated_at
		)
		SELECT ` + attendanceColumns + `
		FROM inserted a
		JOIN employees e ON e.id = a.employee_id
	`

	created, err := r.scan(q.QueryRow(ctx, query,
		a.ID,
		a.EmployeeID,
		calendar.DateKey(a.Date),
		a.CheckInAt,
		string(a.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, translateAttendanceError("create attendance", err)
	}

	return created, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, id string, patch attendance.CheckOutPatch) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH updated AS (
			UPDATE attendances
			   SET check_out_at = $1,
			       total_hours = $2,
			       updated_at = NOW()
			 WHERE id = $3
			   AND check_out_at IS NULL
			RETURNING id, employee_id, date, check_in_at, check_out_at, status, total_hours, created_at, updated_at
		)
		SELECT ` + attendanceColumns + `
		FROM updated a
		JOIN employees e ON e.id = a.employee_id
	`

	updated, err := r.scan(q.QueryRow(ctx, query, patch.CheckOutAt, patch.TotalHours, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Attendance{}, translateAttendanceError("update attendance", err)
	}

	return updated, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		baseWhere += fmt.Sprintf(" AND e.employee_code = $%d", argIdx)
		args = append(args, *filter.EmployeeCode)
		argIdx++
	}

	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND LOWER(e.department) = LOWER($%d)", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}

	// Date filter
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d::date", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	// Date range filters
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Month / year filters
	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND EXTRACT(YEAR FROM a.date) = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Month != nil {
		baseWhere += fmt.Sprintf(" AND EXTRACT(MONTH FROM a.date) = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}

	// Status filter
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, storeError("count attendances", err)
	}

	// Build ORDER BY
	orderByField := "a.date"
	switch filter.SortBy {
	case "employee_code":
		orderByField = "e.employee_code"
	case "employee_name":
		orderByField = "e.full_name"
	case "check_in_at":
		orderByField = "a.check_in_at"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s, a.id %s
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, orderByField, sortOrder, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, storeError("query attendances", err)
	}
	defer rows.Close()

	attendances := []attendance.Attendance{}
	for rows.Next() {
		att, err := r.scan(rows)
		if err != nil {
			return nil, 0, storeError("scan attendance", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeError("iterate attendances", err)
	}

	return attendances, total, nil
}

// scan reads one row in attendanceColumns order.
func (r *attendanceRepository) scan(row pgx.Row) (attendance.Attendance, error) {
	var (
		att               attendance.Attendance
		date              time.Time
		status            string
		checkIn, checkOut sql.NullTime
		totalHours        sql.NullFloat64
		code, name, dept  sql.NullString
	)

	if err := row.Scan(
		&att.ID, &att.EmployeeID, &date, &checkIn, &checkOut,
		&status, &totalHours, &att.CreatedAt, &att.UpdatedAt,
		&code, &name, &dept,
	); err != nil {
		return attendance.Attendance{}, err
	}

	y, m, d := date.Date()
	att.Date = time.Date(y, m, d, 0, 0, 0, 0, r.location)
	att.Status = attendance.Status(status)
	if checkIn.Valid {
		t := checkIn.Time.UTC()
		att.CheckInAt = &t
	}
	if checkOut.Valid {
		t := checkOut.Time.UTC()
		att.CheckOutAt = &t
	}
	if totalHours.Valid {
		h := totalHours.Float64
		att.TotalHours = &h
	}
	att.EmployeeCode = nullString(code)
	att.EmployeeName = nullString(name)
	att.Department = nullString(dept)

	return att, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

// translateAttendanceError maps constraint violations to domain errors.
func translateAttendanceError(op string, err error) error {
	code, _ := pgErrorCode(err)
	switch code {
	case uniqueViolationCode:
		return attendance.ErrAlreadyCheckedIn
	case foreignKeyViolationCode, invalidTextCode:
		return employee.ErrEmployeeNotFound
	case checkViolationCode:
		return attendance.ErrInvalidTimeRange
	default:
		return storeError(op, err)
	}
}
