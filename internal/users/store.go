package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

type SQLStore struct{ db *sql.DB }

func NewStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// GetByEmail returns (nil, nil) when no user exists; the service decides
// whether that is an error.
func (s *SQLStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
	SELECT email, name, date_of_birth, role, user_company, company_image, employee_limit, created_at
	FROM users WHERE email = ?`
	var u User
	err := s.db.QueryRowContext(ctx, q, email).Scan(
		&u.Email, &u.Name, &u.DateOfBirth, &u.Role, &u.UserCompany, &u.CompanyImage,
		&u.EmployeeLimit, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLStore) Insert(ctx context.Context, u *User) error {
	const q = `
	INSERT INTO users
	(email, name, date_of_birth, role, user_company, company_image, employee_limit, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		u.Email, u.Name, u.DateOfBirth, u.Role, u.UserCompany, u.CompanyImage,
		u.EmployeeLimit, u.CreatedAt)
	return err
}

func (s *SQLStore) List(ctx context.Context, f UserFilter) ([]User, error) {
	sb := strings.Builder{}
	sb.WriteString(`
	SELECT email, name, date_of_birth, role, user_company, company_image, employee_limit, created_at
	FROM users
	WHERE 1=1`)

	args := []any{}
	if f.UserCompany != "" {
		sb.WriteString(` AND user_company = ?`)
		args = append(args, f.UserCompany)
	}
	if f.Role != "" {
		sb.WriteString(` AND role = ?`)
		args = append(args, f.Role)
	}
	sb.WriteString(` ORDER BY created_at`)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.Email, &u.Name, &u.DateOfBirth, &u.Role, &u.UserCompany, &u.CompanyImage,
			&u.EmployeeLimit, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLStore) UpdateProfile(ctx context.Context, email string, in UpdateProfileRequest) error {
	const q = `UPDATE users SET name = ?, date_of_birth = ? WHERE email = ?`
	var dob sql.NullString
	if in.DateOfBirth != nil && *in.DateOfBirth != "" {
		dob = sql.NullString{String: *in.DateOfBirth, Valid: true}
	}
	return s.execExpectingRow(ctx, q, in.Name, dob, email)
}

func (s *SQLStore) UpdateCompany(ctx context.Context, email, userCompany, companyImage string) error {
	const q = `UPDATE users SET user_company = ?, company_image = ? WHERE email = ?`
	return s.execExpectingRow(ctx, q, nullable(userCompany), nullable(companyImage), email)
}

func (s *SQLStore) UpdateCompanyBulk(ctx context.Context, emails []string, userCompany, companyImage string) (int64, error) {
	placeholders := strings.Repeat("?,", len(emails))
	placeholders = placeholders[:len(placeholders)-1]
	q := `UPDATE users SET user_company = ?, company_image = ? WHERE email IN (` + placeholders + `)`

	args := make([]any, 0, len(emails)+2)
	args = append(args, nullable(userCompany), nullable(companyImage))
	for _, e := range emails {
		args = append(args, e)
	}

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// IncrementEmployeeLimit adds delta in one statement; no read-then-write.
func (s *SQLStore) IncrementEmployeeLimit(ctx context.Context, email string, delta int) error {
	const q = `UPDATE users SET employee_limit = employee_limit + ? WHERE email = ?`
	return s.execExpectingRow(ctx, q, delta, email)
}

func (s *SQLStore) execExpectingRow(ctx context.Context, q string, args ...any) error {
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		// RowsAffected is 0 for both a missing row and a no-op update
		email, _ := args[len(args)-1].(string)
		if u, gerr := s.GetByEmail(ctx, email); gerr != nil {
			return gerr
		} else if u == nil {
			return ErrNotFound("user not found")
		}
	}
	return nil
}

func nullable(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
