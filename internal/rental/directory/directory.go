// Package directory looks up the companies (vendors) and clients (renters) the
// reservation core refers to.
package directory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

const StatusActive = "active"

type Company struct {
	ID     int64  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Status string `db:"status" json:"status"`
}

func (c *Company) IsActive() bool { return c.Status == StatusActive }

type Client struct {
	ID     int64          `db:"id" json:"id"`
	UserID sql.NullString `db:"user_id" json:"-"`
	Name   string         `db:"name" json:"name"`
	Email  string         `db:"email" json:"email"`
	Status string         `db:"status" json:"status"`
}

func (c *Client) IsActive() bool { return c.Status == StatusActive }

type Store struct{ db *sqlx.DB }

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// GetCompanyByID returns nil when absent.
func (s *Store) GetCompanyByID(ctx context.Context, id int64) (*Company, error) {
	var c Company
	err := s.db.GetContext(ctx, &c, `SELECT id, name, status FROM companies WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetClientByID returns nil when absent.
func (s *Store) GetClientByID(ctx context.Context, id int64) (*Client, error) {
	return s.getClient(ctx, `SELECT id, user_id, name, email, status FROM clients WHERE id = ?`, id)
}

// GetClientByUserID resolves the client record of a login account.
func (s *Store) GetClientByUserID(ctx context.Context, userID string) (*Client, error) {
	return s.getClient(ctx, `SELECT id, user_id, name, email, status FROM clients WHERE user_id = ? LIMIT 1`, userID)
}

func (s *Store) ListActiveCompanies(ctx context.Context) ([]Company, error) {
	out := []Company{}
	if err := s.db.SelectContext(ctx, &out, `SELECT id, name, status FROM companies WHERE status = ? ORDER BY name`, StatusActive); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) getClient(ctx context.Context, q string, arg any) (*Client, error) {
	var c Client
	err := s.db.GetContext(ctx, &c, q, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
