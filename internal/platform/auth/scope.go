package auth

import "fmt"

// Scope selects which companies' data a query may touch.
// The zero value is not a valid scope; use AllCompanies or SingleCompany.
type Scope struct {
	companyID int64
	kind      scopeKind
}

type scopeKind uint8

const (
	scopeInvalid scopeKind = iota
	scopeAll
	scopeSingle
)

func AllCompanies() Scope { return Scope{kind: scopeAll} }

func SingleCompany(id int64) Scope { return Scope{kind: scopeSingle, companyID: id} }

func (s Scope) IsAll() bool { return s.kind == scopeAll }

func (s Scope) Valid() bool { return s.kind == scopeAll || (s.kind == scopeSingle && s.companyID > 0) }

// CompanyID returns the company of a single-company scope.
func (s Scope) CompanyID() (int64, bool) {
	if s.kind != scopeSingle {
		return 0, false
	}
	return s.companyID, true
}

// Includes reports whether data owned by companyID is visible in this scope.
func (s Scope) Includes(companyID int64) bool {
	switch s.kind {
	case scopeAll:
		return true
	case scopeSingle:
		return s.companyID == companyID
	default:
		return false
	}
}

func (s Scope) String() string {
	switch s.kind {
	case scopeAll:
		return "all"
	case scopeSingle:
		return fmt.Sprintf("company:%d", s.companyID)
	default:
		return "invalid"
	}
}
