package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"eventrent-backend/internal/platform/apierr"
)

// RequireAuth validates "Authorization: Bearer <token>" and stores the caller Identity in the context.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			abort(c, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			abort(c, http.StatusUnauthorized, "empty token")
			return
		}

		id, err := ParseToken(tokenStr, secret)
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(CtxIdentityKey, id)
		c.Next()
	}
}

// ParseToken verifies an HS256 token and extracts the identity claims.
func ParseToken(tokenStr string, secret []byte) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// alg is pinned to avoid "none"
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || token == nil || !token.Valid {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}

	id := Identity{UserID: sub}
	if role, ok := claims["role"].(string); ok {
		id.Role = role
	}
	// json numbers decode as float64
	if lvl, ok := claims["access_level"].(float64); ok {
		id.AccessLevel = int(lvl)
	} else {
		// missing level is never treated as super-admin
		id.AccessLevel = AccessLevelStaff
	}
	if cid, ok := claims["company_id"].(float64); ok && cid > 0 {
		v := int64(cid)
		id.CompanyID = &v
	}
	return id, nil
}

// RequireRole allows only the listed roles. Super-admins always pass.
func RequireRole(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]struct{})
	for _, r := range roles {
		if r == "" {
			continue
		}
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		id, ok := FromContext(c)
		if !ok {
			abort(c, http.StatusForbidden, "missing identity")
			return
		}
		if id.AccessLevel == AccessLevelSuperAdmin {
			c.Next()
			return
		}
		if _, allowed := roleSet[id.Role]; !allowed {
			abort(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin admits only platform-wide accounts. A company admin is rejected
// even though RequireRole(RoleAdmin) would let it through.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := FromContext(c)
		if !ok {
			abort(c, http.StatusForbidden, "missing identity")
			return
		}
		if id.AccessLevel != AccessLevelSuperAdmin {
			abort(c, http.StatusForbidden, "super-admin only")
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, status int, msg string) {
	code := apierr.CodeUnauthorized
	if status == http.StatusForbidden {
		code = apierr.CodeForbidden
	}
	c.AbortWithStatusJSON(status, apierr.Body(code, msg))
}
