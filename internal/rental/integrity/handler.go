package integrity

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/rental/assets"
)

// API is the validator surface used by the HTTP layer.
type API interface {
	ValidateProductAsset(ctx context.Context, productID, assetID *int64) (ProductAssetResult, error)
	NormalizeLineItem(ctx context.Context, item LineItem) (NormalizeResult, error)
	ListAvailableAssets(ctx context.Context, productID int64) []assets.Asset
	CountAvailableAssets(ctx context.Context, productID int64) int
}

type Handler struct {
	svc API
	log *zap.Logger
}

func NewHandler(svc API, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func RegisterRoutes(r gin.IRoutes, svc API, log *zap.Logger) {
	h := NewHandler(svc, log)

	r.POST("/integrity/product-asset", h.ValidateProductAsset)
	r.POST("/integrity/line-items/normalize", h.NormalizeLineItem)
	r.GET("/products/:id/available-assets", h.ListAvailableAssets)
}

type ValidateProductAssetRequest struct {
	ProductID *int64 `json:"product_id,omitempty"`
	AssetID   *int64 `json:"asset_id,omitempty"`
}

// ValidateProductAsset godoc
// @Summary  Check that an asset belongs to the declared product and is reservable
// @Tags     integrity
// @Accept   json
// @Produce  json
// @Param    body body ValidateProductAssetRequest true "references"
// @Success  200 {object} ProductAssetResult
// @Failure  422 {object} ProductAssetResult
// @Router   /integrity/product-asset [post]
func (h *Handler) ValidateProductAsset(c *gin.Context) {
	var req ValidateProductAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	res, err := h.svc.ValidateProductAsset(c.Request.Context(), req.ProductID, req.AssetID)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	if !res.Valid {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// NormalizeLineItem godoc
// @Summary  Validate a reservation line and return its normalized form
// @Tags     integrity
// @Accept   json
// @Produce  json
// @Param    body body LineItem true "line item"
// @Success  200 {object} NormalizeResult
// @Failure  422 {object} NormalizeResult
// @Router   /integrity/line-items/normalize [post]
func (h *Handler) NormalizeLineItem(c *gin.Context) {
	var req LineItem
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	res, err := h.svc.NormalizeLineItem(c.Request.Context(), req)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	if !res.Valid {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListAvailableAssets(c *gin.Context) {
	pid, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || pid <= 0 {
		apierr.BadRequest(c, "id must be a positive number")
		return
	}
	ctx := c.Request.Context()
	items := h.svc.ListAvailableAssets(ctx, pid)
	now := time.Now()
	out := make([]assets.AssetResponse, 0, len(items))
	for i := range items {
		out = append(out, assets.ToResponse(&items[i], now))
	}
	c.JSON(http.StatusOK, gin.H{
		"items": out,
		"count": h.svc.CountAvailableAssets(ctx, pid),
	})
}
