package payments

import (
	"net/http"
	"strconv"

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

	r.POST("/reservations/:id/payments", staff, h.Record)
	r.GET("/reservations/:id/payments", staff, h.List)
}

// Record godoc
// @Summary  Record a payment against a reservation
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    id   path int                  true "reservation id"
// @Param    body body RecordPaymentRequest true "payment"
// @Success  201 {object} ReceiptResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  409 {object} apierr.ErrorDTO
// @Router   /reservations/{id}/payments [post]
func (h *Handler) Record(c *gin.Context) {
	rid, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || rid <= 0 {
		apierr.BadRequest(c, "id must be a positive number")
		return
	}
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	id, _ := auth.FromContext(c)
	res, err := h.svc.RecordPayment(c.Request.Context(), id, rid, req)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) List(c *gin.Context) {
	rid, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || rid <= 0 {
		apierr.BadRequest(c, "id must be a positive number")
		return
	}
	id, _ := auth.FromContext(c)
	items, err := h.svc.ListTransactions(c.Request.Context(), id, rid)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
