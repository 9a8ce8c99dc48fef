package assets

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

	r.POST("/assets", staff, h.CreateAsset)
	r.GET("/assets", h.ListAssets)
	r.GET("/assets/:id", h.GetAsset)
	r.PUT("/assets/:id/availability", staff, h.ChangeAvailability)

	// label printer export
	r.POST("/assets/labels", staff, h.ExportLabels)
}

func (h *Handler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	id, _ := auth.FromContext(c)
	res, err := h.svc.CreateAsset(c.Request.Context(), id.Scope(), req)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.Header("Location", "/assets/"+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetAsset(c *gin.Context) {
	aid, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierr.BadRequest(c, "id must be a number")
		return
	}
	id, _ := auth.FromContext(c)
	res, err := h.svc.GetAsset(c.Request.Context(), id.Scope(), aid)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListAssets(c *gin.Context) {
	var f AssetFilter
	if v := c.Query("product_id"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.ProductID = &n
		}
	}
	if v := c.Query("warehouse_id"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.WarehouseID = &n
		}
	}
	if v := c.Query("availability"); v != "" {
		av := Availability(v)
		f.Availability = &av
	}
	if v := c.Query("active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Active = &b
		}
	}
	f.Code = c.Query("code")
	p := Page{
		Limit:  atoiDef(c.Query("limit"), 50),
		Offset: atoiDef(c.Query("offset"), 0),
		Order:  strings.ToLower(c.DefaultQuery("order", "asc")),
	}

	id, _ := auth.FromContext(c)
	items, total, err := h.svc.ListAssets(c.Request.Context(), id.Scope(), f, p)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "next_offset": nextOffset(total, p)})
}

func (h *Handler) ChangeAvailability(c *gin.Context) {
	aid, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierr.BadRequest(c, "id must be a number")
		return
	}
	var req ChangeAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	id, _ := auth.FromContext(c)
	res, err := h.svc.ChangeAvailability(c.Request.Context(), id, aid, req)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ExportLabels(c *gin.Context) {
	var req ExportLabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	id, _ := auth.FromContext(c)
	out, err := h.svc.ExportLabels(c.Request.Context(), id.Scope(), req)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	contentType := "text/csv; charset=utf-8"
	if strings.EqualFold(req.Encoding, EncodingShiftJIS) {
		contentType = "text/csv; charset=Shift_JIS"
	}
	c.Header("Content-Disposition", `attachment; filename="asset_labels.csv"`)
	c.Data(http.StatusOK, contentType, out)
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

func nextOffset(total int64, p Page) int {
	p = p.normalized()
	n := p.Offset + p.Limit
	if n >= int(total) {
		return 0
	}
	return n
}
