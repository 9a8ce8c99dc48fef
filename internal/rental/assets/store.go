package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/platform/db"
)

type Repository interface {
	GetAssetByID(ctx context.Context, id int64) (*Asset, error)
	ListAssets(ctx context.Context, scope auth.Scope, f AssetFilter, p Page) ([]Asset, int64, error)
	ListAvailableByProduct(ctx context.Context, productID int64) ([]Asset, error)
	CountAvailableByProduct(ctx context.Context, productID int64) (int, error)
	InsertAsset(ctx context.Context, a *Asset) error
	UpdateAvailability(ctx context.Context, id int64, from, to Availability) (bool, error)
	ListLabelRows(ctx context.Context, scope auth.Scope, productID *int64) ([]LabelRow, error)
}

type Store struct{ db *sqlx.DB }

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

const assetColumns = `id, company_id, product_id, warehouse_id, code, physical_condition, availability, is_active,
	acquired_on, acquisition_cost, depreciation_rate, notes, created_at, updated_at`

// availableWhere is the single definition of "reservable": active and Available.
const availableWhere = `is_active = 1 AND availability = 'Available'`

// GetAssetByID returns nil when the asset does not exist.
func (s *Store) GetAssetByID(ctx context.Context, id int64) (*Asset, error) {
	q := `SELECT ` + assetColumns + ` FROM assets WHERE id = ?`
	var a Asset
	if err := s.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) ListAssets(ctx context.Context, scope auth.Scope, f AssetFilter, p Page) ([]Asset, int64, error) {
	p = p.normalized()

	var where strings.Builder
	args := []any{}
	where.WriteString(` WHERE 1=1`)
	frag, sargs := db.ScopeClause(scope, "company_id")
	where.WriteString(frag)
	args = append(args, sargs...)
	if f.ProductID != nil {
		where.WriteString(` AND product_id = ?`)
		args = append(args, *f.ProductID)
	}
	if f.WarehouseID != nil {
		where.WriteString(` AND warehouse_id = ?`)
		args = append(args, *f.WarehouseID)
	}
	if f.Availability != nil {
		where.WriteString(` AND availability = ?`)
		args = append(args, string(*f.Availability))
	}
	if f.Active != nil {
		where.WriteString(` AND is_active = ?`)
		args = append(args, *f.Active)
	}
	if f.Code != "" {
		where.WriteString(` AND code = ?`)
		args = append(args, f.Code)
	}

	q := fmt.Sprintf(`SELECT %s FROM assets%s ORDER BY id %s LIMIT ? OFFSET ?`,
		assetColumns, where.String(), db.OrderDir(p.Order))
	items := []Asset{}
	var total int64
	// one snapshot so the page and the count agree
	err := db.ReadOnly(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := tx.SelectContext(ctx, &items, q, append(args, p.Limit, p.Offset)...); err != nil {
			return err
		}
		return tx.GetContext(ctx, &total, `SELECT COUNT(*) FROM assets`+where.String(), args...)
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) ListAvailableByProduct(ctx context.Context, productID int64) ([]Asset, error) {
	q := `SELECT ` + assetColumns + ` FROM assets WHERE product_id = ? AND ` + availableWhere + ` ORDER BY code`
	items := []Asset{}
	if err := s.db.SelectContext(ctx, &items, q, productID); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountAvailableByProduct(ctx context.Context, productID int64) (int, error) {
	q := `SELECT COUNT(*) FROM assets WHERE product_id = ? AND ` + availableWhere
	var n int
	if err := s.db.GetContext(ctx, &n, q, productID); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) InsertAsset(ctx context.Context, a *Asset) error {
	const q = `
	INSERT INTO assets
	(company_id, product_id, warehouse_id, code, physical_condition, availability, is_active,
	 acquired_on, acquisition_cost, depreciation_rate, notes, created_at, updated_at)
	VALUES
	(:company_id, :product_id, :warehouse_id, :code, :physical_condition, :availability, :is_active,
	 :acquired_on, :acquisition_cost, :depreciation_rate, :notes, :created_at, :updated_at)`
	res, err := s.db.NamedExecContext(ctx, q, a)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

// UpdateAvailability moves an asset from one state to another in a single conditional UPDATE.
// false means the asset was not in state "from" any more.
func (s *Store) UpdateAvailability(ctx context.Context, id int64, from, to Availability) (bool, error) {
	const q = `
	UPDATE assets
	SET availability = ?,
		is_active = CASE WHEN ? = 'Decommissioned' THEN 0 ELSE is_active END,
		updated_at = CURRENT_TIMESTAMP
	WHERE id = ? AND availability = ?`
	res, err := s.db.ExecContext(ctx, q, string(to), string(to), id, string(from))
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff == 1, nil
}

func (s *Store) ListLabelRows(ctx context.Context, scope auth.Scope, productID *int64) ([]LabelRow, error) {
	var sb strings.Builder
	args := []any{}
	sb.WriteString(`
	SELECT a.code, p.name AS product_name, p.sku, a.warehouse_id
	FROM assets a
	JOIN products p ON p.id = a.product_id
	WHERE a.is_active = 1`)
	frag, sargs := db.ScopeClause(scope, "a.company_id")
	sb.WriteString(frag)
	args = append(args, sargs...)
	if productID != nil {
		sb.WriteString(` AND a.product_id = ?`)
		args = append(args, *productID)
	}
	sb.WriteString(` ORDER BY p.name, a.code`)

	rows := []LabelRow{}
	if err := s.db.SelectContext(ctx, &rows, sb.String(), args...); err != nil {
		return nil, err
	}
	return rows, nil
}
