package catalog

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

// Repository is the persistence contract of the catalog.
type Repository interface {
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context, scope auth.Scope, f ProductFilter, p Page) ([]Product, int64, error)
	InsertProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, id int64, in UpdateProductRequest) error
	DeactivateProduct(ctx context.Context, id int64) (bool, error)
	IsSKUUnique(ctx context.Context, companyID int64, sku string, excludeID int64) (bool, error)
	StockSummary(ctx context.Context, productID int64) (*StockSummary, error)
}

type Store struct{ db *sqlx.DB }

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

const productColumns = `id, company_id, sku, name, daily_price, stock_count, is_active, created_at, updated_at`

// GetProductByID returns nil when the product does not exist.
func (s *Store) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	var p Product
	if err := s.db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) ListProducts(ctx context.Context, scope auth.Scope, f ProductFilter, p Page) ([]Product, int64, error) {
	p = p.normalized()

	var where strings.Builder
	args := []any{}
	where.WriteString(` WHERE 1=1`)
	frag, sargs := db.ScopeClause(scope, "company_id")
	where.WriteString(frag)
	args = append(args, sargs...)
	if f.Active != nil {
		where.WriteString(` AND is_active = ?`)
		args = append(args, *f.Active)
	}
	if f.Search != "" {
		where.WriteString(` AND (name LIKE ? OR sku LIKE ?)`)
		like := "%" + f.Search + "%"
		args = append(args, like, like)
	}

	q := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY created_at %s LIMIT ? OFFSET ?`,
		productColumns, where.String(), db.OrderDir(p.Order))

	items := []Product{}
	var total int64
	// one snapshot so the page and the count agree
	err := db.ReadOnly(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := tx.SelectContext(ctx, &items, q, append(args, p.Limit, p.Offset)...); err != nil {
			return err
		}
		return tx.GetContext(ctx, &total, `SELECT COUNT(*) FROM products`+where.String(), args...)
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) InsertProduct(ctx context.Context, p *Product) error {
	const q = `
	INSERT INTO products (company_id, sku, name, daily_price, stock_count, is_active, created_at, updated_at)
	VALUES (:company_id, :sku, :name, :daily_price, :stock_count, :is_active, :created_at, :updated_at)`
	res, err := s.db.NamedExecContext(ctx, q, p)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// UpdateProduct applies only the fields present in the request.
func (s *Store) UpdateProduct(ctx context.Context, id int64, in UpdateProductRequest) error {
	sets := []string{}
	args := []any{}
	if in.SKU != nil {
		sets = append(sets, "sku = ?")
		args = append(args, *in.SKU)
	}
	if in.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *in.Name)
	}
	if in.DailyPrice != nil {
		sets = append(sets, "daily_price = ?")
		args = append(args, *in.DailyPrice)
	}
	if in.StockCount != nil {
		sets = append(sets, "stock_count = ?")
		args = append(args, *in.StockCount)
	}
	if in.Active != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *in.Active)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE products SET %s WHERE id = ?`, strings.Join(sets, ", "))
	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

// DeactivateProduct is the soft delete; products are never removed.
func (s *Store) DeactivateProduct(ctx context.Context, id int64) (bool, error) {
	const q = `UPDATE products SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}

func (s *Store) IsSKUUnique(ctx context.Context, companyID int64, sku string, excludeID int64) (bool, error) {
	const q = `SELECT COUNT(*) FROM products WHERE company_id = ? AND sku = ? AND id <> ?`
	var n int
	if err := s.db.GetContext(ctx, &n, q, companyID, sku, excludeID); err != nil {
		return false, err
	}
	return n == 0, nil
}

func (s *Store) StockSummary(ctx context.Context, productID int64) (*StockSummary, error) {
	const q = `
	SELECT p.id AS product_id, p.stock_count,
		COUNT(a.id) AS total_assets,
		COALESCE(SUM(a.is_active = 1 AND a.availability = 'Available'), 0) AS available_assets
	FROM products p
	LEFT JOIN assets a ON a.product_id = p.id
	WHERE p.id = ?
	GROUP BY p.id, p.stock_count`
	var out StockSummary
	if err := s.db.GetContext(ctx, &out, q, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
