package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AccessLevelStaff is the default level for company accounts.
const AccessLevelStaff = 2

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrAuthFailed    = errors.New("authentication failed")
)

type AuthService interface {
	Login(ctx context.Context, id, password string) (string, error)
	Register(ctx context.Context, in RegisterInput) error
	Delete(ctx context.Context, id string) error
}

type RegisterInput struct {
	ID          string
	Password    string
	Role        string
	CompanyID   *int64
	AccessLevel int
}

type Service struct {
	store  AccountStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(store AccountStore, secret []byte, ttl time.Duration) *Service {
	return &Service{store: store, secret: secret, ttl: ttl, now: time.Now}
}

func (s *Service) Login(ctx context.Context, id, password string) (string, error) {
	acct, err := s.store.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if acct == nil || acct.IsDisabled {
		return "", ErrAuthFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", ErrAuthFailed
	}

	claims := jwt.MapClaims{
		"sub":          acct.ID,
		"role":         acct.Role,
		"access_level": acct.AccessLevel,
		"exp":          s.now().Add(s.ttl).Unix(),
	}
	if acct.CompanyID.Valid {
		claims["company_id"] = acct.CompanyID.Int64
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	exists, err := s.store.GetByID(ctx, in.ID)
	if err != nil {
		return err
	}
	if exists != nil {
		return ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	a := &Account{
		ID:           in.ID,
		PasswordHash: string(hash),
		Role:         in.Role,
		AccessLevel:  in.AccessLevel,
	}
	if in.CompanyID != nil {
		a.CompanyID = sql.NullInt64{Int64: *in.CompanyID, Valid: true}
	}
	return s.store.Create(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
