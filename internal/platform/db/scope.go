package db

import "eventrent-backend/internal/platform/auth"

// ScopeClause returns an " AND <column> = ?" fragment for single-company scopes
// and nothing for AllCompanies.
func ScopeClause(s auth.Scope, column string) (string, []any) {
	if id, ok := s.CompanyID(); ok {
		return " AND " + column + " = ?", []any{id}
	}
	return "", nil
}

// OrderDir whitelists the sort direction.
func OrderDir(order string) string {
	if order == "asc" || order == "ASC" {
		return "ASC"
	}
	return "DESC"
}
