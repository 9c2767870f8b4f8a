package custom_requests

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

type SQLStore struct{ db *sql.DB }

func NewStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const selectCols = `
	custom_request_id, asset_name, asset_type, asset_price, asset_image,
	request_reason, request_info, employee_email, employee_name,
	requester_company, request_date, status, action_date`

func (s *SQLStore) Insert(ctx context.Context, r *CustomRequest) error {
	const q = `
	INSERT INTO custom_requests
	(custom_request_id, asset_name, asset_type, asset_price, asset_image,
	 request_reason, request_info, employee_email, employee_name,
	 requester_company, request_date, status)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		r.CustomRequestID, r.AssetName, r.AssetType, r.AssetPrice, r.AssetImage,
		r.RequestReason, r.RequestInfo, r.EmployeeEmail, r.EmployeeName,
		r.RequesterCompany, r.RequestDate, r.Status)
	return err
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (*CustomRequest, error) {
	q := `SELECT` + selectCols + ` FROM custom_requests WHERE custom_request_id = ?`
	var r CustomRequest
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&r.CustomRequestID, &r.AssetName, &r.AssetType, &r.AssetPrice, &r.AssetImage,
		&r.RequestReason, &r.RequestInfo, &r.EmployeeEmail, &r.EmployeeName,
		&r.RequesterCompany, &r.RequestDate, &r.Status, &r.ActionDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound("custom request not found")
		}
		return nil, err
	}
	return &r, nil
}

func (s *SQLStore) List(ctx context.Context, f CustomRequestFilter) ([]CustomRequest, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT` + selectCols + ` FROM custom_requests WHERE 1=1`)

	args := []any{}
	if f.CompanySearch != "" {
		sb.WriteString(` AND requester_company = ?`)
		args = append(args, f.CompanySearch)
	}
	if f.EmailSearch != "" {
		sb.WriteString(` AND employee_email = ?`)
		args = append(args, f.EmailSearch)
	}
	sb.WriteString(` ORDER BY request_date DESC`)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomRequest
	for rows.Next() {
		var r CustomRequest
		if err := rows.Scan(
			&r.CustomRequestID, &r.AssetName, &r.AssetType, &r.AssetPrice, &r.AssetImage,
			&r.RequestReason, &r.RequestInfo, &r.EmployeeEmail, &r.EmployeeName,
			&r.RequesterCompany, &r.RequestDate, &r.Status, &r.ActionDate,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLStore) SetStatus(ctx context.Context, id, status string, actionDate time.Time) error {
	const q = `UPDATE custom_requests SET status = ?, action_date = ? WHERE custom_request_id = ?`
	res, err := s.db.ExecContext(ctx, q, status, actionDate, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		// status may already be the requested one; settle with a read
		if _, gerr := s.GetByID(ctx, id); gerr != nil {
			return gerr
		}
	}
	return nil
}

func (s *SQLStore) Update(ctx context.Context, id string, in UpdateCustomRequestRequest) error {
	sets := []string{}
	args := []any{}
	if in.AssetName != nil {
		sets = append(sets, "asset_name = ?")
		args = append(args, *in.AssetName)
	}
	if in.AssetType != nil {
		sets = append(sets, "asset_type = ?")
		args = append(args, *in.AssetType)
	}
	if in.AssetPrice != nil {
		sets = append(sets, "asset_price = ?")
		args = append(args, *in.AssetPrice)
	}
	if in.AssetImage != nil {
		sets = append(sets, "asset_image = ?")
		args = append(args, *in.AssetImage)
	}
	if in.RequestReason != nil {
		sets = append(sets, "request_reason = ?")
		args = append(args, *in.RequestReason)
	}
	if in.RequestInfo != nil {
		sets = append(sets, "request_info = ?")
		args = append(args, *in.RequestInfo)
	}
	if len(sets) == 0 {
		return nil
	}

	q := "UPDATE custom_requests SET " + strings.Join(sets, ", ") + " WHERE custom_request_id = ?"
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		if _, gerr := s.GetByID(ctx, id); gerr != nil {
			return gerr
		}
	}
	return nil
}
