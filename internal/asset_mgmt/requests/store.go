package requests

import (
	"context"
	"database/sql"
	"strings"
)

type SQLStore struct{ db *sql.DB }

func NewStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Insert(ctx context.Context, r *Request) error {
	const q = `
	INSERT INTO requests
	(request_id, asset_id, asset_name, asset_type, user_email, user_name,
	 requester_company, request_note, request_date, status)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		r.RequestID, r.AssetID, r.AssetName, r.AssetType, r.UserEmail, r.UserName,
		r.RequesterCompany, r.RequestNote, r.RequestDate, r.Status)
	return err
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (*Request, error) {
	const q = `
	SELECT request_id, asset_id, asset_name, asset_type, user_email, user_name,
	       requester_company, request_note, request_date, status, action_date
	FROM requests WHERE request_id = ?`
	var r Request
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&r.RequestID, &r.AssetID, &r.AssetName, &r.AssetType, &r.UserEmail, &r.UserName,
		&r.RequesterCompany, &r.RequestNote, &r.RequestDate, &r.Status, &r.ActionDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound("request not found")
		}
		return nil, err
	}
	return &r, nil
}

func (s *SQLStore) List(ctx context.Context, f RequestFilter) ([]Request, error) {
	sb := strings.Builder{}
	sb.WriteString(`
	SELECT request_id, asset_id, asset_name, asset_type, user_email, user_name,
	       requester_company, request_note, request_date, status, action_date
	FROM requests
	WHERE 1=1`)

	args := []any{}
	if f.NameSearch != "" {
		sb.WriteString(` AND user_name LIKE ?`)
		args = append(args, "%"+f.NameSearch+"%")
	}
	if f.EmailSearch != "" {
		sb.WriteString(` AND user_email = ?`)
		args = append(args, f.EmailSearch)
	}
	if f.StatusSearch != "" {
		sb.WriteString(` AND status = ?`)
		args = append(args, f.StatusSearch)
	}
	if f.TypeSearch != "" {
		sb.WriteString(` AND asset_type = ?`)
		args = append(args, f.TypeSearch)
	}
	if f.ItemNameSearch != "" {
		sb.WriteString(` AND LOWER(asset_name) = LOWER(?)`)
		args = append(args, f.ItemNameSearch)
	}
	if f.CompanySearch != "" {
		sb.WriteString(` AND requester_company = ?`)
		args = append(args, f.CompanySearch)
	}
	sb.WriteString(` ORDER BY request_date DESC`)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		var r Request
		if err := rows.Scan(
			&r.RequestID, &r.AssetID, &r.AssetName, &r.AssetType, &r.UserEmail, &r.UserName,
			&r.RequesterCompany, &r.RequestNote, &r.RequestDate, &r.Status, &r.ActionDate,
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

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM requests WHERE request_id = ?`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNotFound("request not found")
	}
	return nil
}

// ExecTransition applies a manager decision and its inventory side effect as
// one atomic unit. The request row is locked for the duration of the
// transaction; the quantity write is a compare-and-swap keyed on the value
// just read, so two concurrent approvals cannot both consume the same unit.
func (s *SQLStore) ExecTransition(ctx context.Context, t Transition) (*Request, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 1. Lock the request row. This also serializes replays of the same
	// decision, so the status guard below is race-free.
	const lockQ = `
	SELECT request_id, asset_id, asset_name, asset_type, user_email, user_name,
	       requester_company, request_note, request_date, status, action_date
	FROM requests WHERE request_id = ? FOR UPDATE`
	var r Request
	err = tx.QueryRowContext(ctx, lockQ, t.RequestID).Scan(
		&r.RequestID, &r.AssetID, &r.AssetName, &r.AssetType, &r.UserEmail, &r.UserName,
		&r.RequesterCompany, &r.RequestNote, &r.RequestDate, &r.Status, &r.ActionDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			err = ErrNotFound("request not found")
		}
		return nil, err
	}

	// 2. Status guard. A replayed decision must not touch inventory again.
	switch t.NewStatus {
	case StatusApproved, StatusRejected:
		if r.Status != StatusPending {
			err = ErrConflict("request is not pending")
			return nil, err
		}
	case StatusReturned:
		if r.Status != StatusApproved {
			err = ErrConflict("request is not approved")
			return nil, err
		}
	}

	assetID := t.AssetID
	if assetID == "" {
		assetID = r.AssetID
	}

	// 3. Inventory side effect.
	switch t.NewStatus {
	case StatusApproved:
		if err = s.adjustQuantityTx(ctx, tx, assetID, -1); err != nil {
			return nil, err
		}
	case StatusReturned:
		if err = s.adjustQuantityTx(ctx, tx, assetID, +1); err != nil {
			return nil, err
		}
	}

	// 4. Status update.
	const updQ = `UPDATE requests SET status = ?, action_date = ? WHERE request_id = ?`
	if _, err = tx.ExecContext(ctx, updQ, t.NewStatus, t.ActionDate, t.RequestID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	r.Status = t.NewStatus
	r.ActionDate = sql.NullTime{Time: t.ActionDate, Valid: true}
	return &r, nil
}

// adjustQuantityTx applies delta to the asset quantity with an optimistic
// check on the value just read. A miss means another transaction got in
// between; the caller rolls back and retries.
func (s *SQLStore) adjustQuantityTx(ctx context.Context, tx *sql.Tx, assetID string, delta int) error {
	const readQ = `SELECT asset_quantity FROM assets WHERE asset_id = ?`
	var qty int
	if err := tx.QueryRowContext(ctx, readQ, assetID).Scan(&qty); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound("asset not found")
		}
		return err
	}

	if delta < 0 && qty+delta < 0 {
		return ErrInsufficientInventory()
	}

	const casQ = `
	UPDATE assets SET asset_quantity = ?
	WHERE asset_id = ? AND asset_quantity = ?`
	res, err := tx.ExecContext(ctx, casQ, qty+delta, assetID, qty)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff != 1 {
		return ErrConcurrentModification()
	}
	return nil
}
