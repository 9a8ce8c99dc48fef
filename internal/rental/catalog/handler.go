package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/platform/auth"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func RegisterRoutes(r gin.IRoutes, svc *Service, log *zap.Logger) {
	h := &Handler{svc: svc, log: log}
	staff := auth.RequireRole(auth.RoleAdmin, auth.RoleStaff)

	r.POST("/products", staff, h.CreateProduct)
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.PUT("/products/:id", staff, h.UpdateProduct)
	r.DELETE("/products/:id", staff, h.DeactivateProduct)
	r.GET("/products/:id/stock", h.GetStock)
}

// CreateProduct godoc
// @Summary  Create a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    body body CreateProductRequest true "product"
// @Success  201 {object} ProductResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  409 {object} apierr.ErrorDTO
// @Router   /products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	id, _ := auth.FromContext(c)
	res, err := h.svc.CreateProduct(c.Request.Context(), id.Scope(), req)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.Header("Location", "/products/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetProduct(c *gin.Context) {
	pid, ok := pathID(c)
	if !ok {
		return
	}
	id, _ := auth.FromContext(c)
	res, err := h.svc.GetProduct(c.Request.Context(), id.Scope(), pid)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListProducts(c *gin.Context) {
	var f ProductFilter
	if v := c.Query("active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Active = &b
		}
	}
	f.Search = strings.TrimSpace(c.Query("q"))
	p := Page{
		Limit:  atoiDef(c.Query("limit"), 50),
		Offset: atoiDef(c.Query("offset"), 0),
		Order:  strings.ToLower(c.DefaultQuery("order", "desc")),
	}
	id, _ := auth.FromContext(c)
	items, total, err := h.svc.ListProducts(c.Request.Context(), id.Scope(), f, p)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	pid, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	id, _ := auth.FromContext(c)
	res, err := h.svc.UpdateProduct(c.Request.Context(), id.Scope(), pid, req)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeactivateProduct(c *gin.Context) {
	pid, ok := pathID(c)
	if !ok {
		return
	}
	id, _ := auth.FromContext(c)
	if err := h.svc.DeactivateProduct(c.Request.Context(), id.Scope(), pid); err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetStock(c *gin.Context) {
	pid, ok := pathID(c)
	if !ok {
		return
	}
	id, _ := auth.FromContext(c)
	res, err := h.svc.GetStock(c.Request.Context(), id.Scope(), pid)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apierr.BadRequest(c, "id must be a positive number")
		return 0, false
	}
	return id, true
}

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return n
}
