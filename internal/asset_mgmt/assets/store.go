package assets

import (
	"context"
	"database/sql"
	"strings"

	platformdb "AMS-backend/internal/platform/db"
)

type SQLStore struct{ db *sql.DB }

func NewStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Insert(ctx context.Context, a *Asset) error {
	const q = `
	INSERT INTO assets
	(asset_id, asset_name, asset_type, asset_quantity, company_name, date_added)
	VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		a.AssetID, a.AssetName, a.AssetType, a.AssetQuantity, a.CompanyName, a.DateAdded)
	return err
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (*Asset, error) {
	const q = `
	SELECT asset_id, asset_name, asset_type, asset_quantity, company_name, date_added
	FROM assets WHERE asset_id = ?`
	var a Asset
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&a.AssetID, &a.AssetName, &a.AssetType, &a.AssetQuantity, &a.CompanyName, &a.DateAdded,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound("asset not found")
		}
		return nil, err
	}
	return &a, nil
}

func (s *SQLStore) List(ctx context.Context, f AssetSearchQuery) ([]Asset, error) {
	sb := strings.Builder{}
	sb.WriteString(`
	SELECT asset_id, asset_name, asset_type, asset_quantity, company_name, date_added
	FROM assets
	WHERE 1=1`)

	args := []any{}
	if f.TypeField != "" {
		sb.WriteString(` AND asset_type = ?`)
		args = append(args, f.TypeField)
	}
	if f.Search != "" {
		sb.WriteString(` AND asset_name LIKE ?`)
		args = append(args, "%"+f.Search+"%")
	}
	if f.CompanySearch != "" {
		sb.WriteString(` AND company_name = ?`)
		args = append(args, f.CompanySearch)
	}
	switch f.QuantityStatus {
	case "available":
		sb.WriteString(` AND asset_quantity > 0`)
	case "outOfStock":
		sb.WriteString(` AND asset_quantity = 0`)
	}

	// the frontend only ever sorts on quantity: "1" asc / "-1" desc
	switch f.SortOrder {
	case "1":
		sb.WriteString(` ORDER BY asset_quantity ASC`)
	case "-1":
		sb.WriteString(` ORDER BY asset_quantity DESC`)
	default:
		sb.WriteString(` ORDER BY date_added DESC`)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Asset
	for rows.Next() {
		var a Asset
		if err := rows.Scan(&a.AssetID, &a.AssetName, &a.AssetType, &a.AssetQuantity, &a.CompanyName, &a.DateAdded); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLStore) Update(ctx context.Context, id string, in UpdateAssetRequest) (*Asset, error) {
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
	if in.AssetQuantity != nil {
		sets = append(sets, "asset_quantity = ?")
		args = append(args, *in.AssetQuantity)
	}
	if len(sets) == 0 {
		// nothing to change, return current values
		return s.GetByID(ctx, id)
	}

	q := "UPDATE assets SET " + strings.Join(sets, ", ") + " WHERE asset_id = ?"
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		// could also be a no-op update; re-read settles it
		if _, gerr := s.GetByID(ctx, id); gerr != nil {
			return nil, gerr
		}
	}
	return s.GetByID(ctx, id)
}

// DeleteGuarded deletes the asset unless a pending request, or an approved
// returnable request, still references it.
func (s *SQLStore) DeleteGuarded(ctx context.Context, id string) error {
	return platformdb.RunInTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx platformdb.DBTX) error {
		var pending bool
		const pendingQ = `SELECT EXISTS(SELECT 1 FROM requests WHERE asset_id = ? AND status = 'pending')`
		if err := tx.QueryRowContext(ctx, pendingQ, id).Scan(&pending); err != nil {
			return err
		}
		if pending {
			return ErrConflict("the asset has a pending request, resolve it first")
		}

		var unreturned bool
		const unreturnedQ = `
		SELECT EXISTS(
			SELECT 1 FROM requests
			WHERE asset_id = ? AND asset_type = 'returnable' AND status = 'approved')`
		if err := tx.QueryRowContext(ctx, unreturnedQ, id).Scan(&unreturned); err != nil {
			return err
		}
		if unreturned {
			return ErrConflict("the asset is approved and still returnable by the requester, resolve it first")
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM assets WHERE asset_id = ?`, id)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return ErrNotFound("asset not found")
		}
		return nil
	})
}
