package auth

import "github.com/gin-gonic/gin"

const (
	CtxIdentityKey = "identity"

	// AccessLevelSuperAdmin grants platform-wide visibility.
	AccessLevelSuperAdmin = 0
)

const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleClient = "client"
)

// Identity is the resolved caller of a request.
type Identity struct {
	UserID      string
	CompanyID   *int64
	Role        string
	AccessLevel int
}

// Scope maps the identity onto the companies it may see.
// A super-admin or an account without a company sees every company.
func (i Identity) Scope() Scope {
	if i.AccessLevel == AccessLevelSuperAdmin || i.CompanyID == nil {
		return AllCompanies()
	}
	return SingleCompany(*i.CompanyID)
}

// CanOverride reports platform-wide override privilege. Client accounts carry no
// company but never get it.
func (i Identity) CanOverride() bool { return i.Role != RoleClient && i.Scope().IsAll() }

func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
