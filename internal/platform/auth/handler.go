package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventrent-backend/internal/platform/apierr"
)

type AuthHandler struct{ svc AuthService }

// RegisterPublicRoutes mounts the unauthenticated login endpoint.
func RegisterPublicRoutes(r gin.IRoutes, svc AuthService) {
	h := &AuthHandler{svc: svc}
	r.POST("/login", h.Login)
}

// RegisterAdminRoutes mounts account management. Only super-admins may call it.
func RegisterAdminRoutes(r gin.IRoutes, svc AuthService) {
	h := &AuthHandler{svc: svc}
	root := RequireSuperAdmin()
	r.POST("/accounts", root, h.Register)
	r.DELETE("/accounts/:id", root, h.DeleteAccount)
}

type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary  Issue an access token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body LoginRequest true "credentials"
// @Success  200 {object} map[string]string
// @Failure  401 {object} apierr.ErrorDTO
// @Router   /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid request")
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.ID, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierr.Body(apierr.CodeUnauthorized, "invalid id or password"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type RegisterRequest struct {
	ID          string  `json:"id" binding:"required"`
	Password    string  `json:"password" binding:"required,min=8"`
	Role        *string `json:"role,omitempty"`
	CompanyID   *int64  `json:"company_id,omitempty"`
	AccessLevel *int    `json:"access_level,omitempty"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid request")
		return
	}

	in := RegisterInput{
		ID:          req.ID,
		Password:    req.Password,
		Role:        RoleStaff,
		CompanyID:   req.CompanyID,
		AccessLevel: AccessLevelStaff,
	}
	if req.Role != nil && *req.Role != "" {
		in.Role = *req.Role
	}
	if req.AccessLevel != nil {
		in.AccessLevel = *req.AccessLevel
	}

	if err := h.svc.Register(c.Request.Context(), in); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			c.JSON(http.StatusConflict, apierr.Body(apierr.CodeConflict, "id already exists"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierr.Body(apierr.CodeInternal, "register failed"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered"})
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, apierr.Body(apierr.CodeNotFound, "not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierr.Body(apierr.CodeInternal, "delete failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
