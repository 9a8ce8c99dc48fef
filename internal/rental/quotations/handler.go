package quotations

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/rental/reservations"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

type ExtendRequest struct {
	Days int `json:"days"`
}

type ConvertRequest struct {
	PaymentMethod string  `json:"payment_method"`
	Note          *string `json:"note,omitempty"`
}

type ConvertResponse struct {
	Result
	Reservation *reservations.ReservationResponse `json:"reservation,omitempty"`
}

// RegisterRoutes mounts the quotation endpoints. All of them are vendor-side.
func RegisterRoutes(r gin.IRoutes, svc *Service, log *zap.Logger) {
	h := &Handler{svc: svc, log: log}
	staff := auth.RequireRole(auth.RoleAdmin, auth.RoleStaff)

	r.GET("/quotations", staff, h.List)
	r.GET("/quotations/stats", staff, h.Stats)
	r.POST("/quotations/:id/extend", staff, h.Extend)
	r.POST("/quotations/:id/convert", staff, h.Convert)
	r.DELETE("/quotations/:id", staff, h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	var state *State
	if v := strings.TrimSpace(c.Query("state")); v != "" {
		st := State(strings.ToLower(v))
		state = &st
	}
	p := reservations.Page{
		Limit:  atoiDef(c.Query("limit"), 50),
		Offset: atoiDef(c.Query("offset"), 0),
	}
	id, _ := auth.FromContext(c)
	rows, err := h.svc.List(c.Request.Context(), id.Scope(), state, p)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	out := make([]reservations.ReservationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, reservations.ToResponse(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// Stats godoc
// @Summary  Quotation statistics and conversion rate
// @Tags     quotations
// @Produce  json
// @Success  200 {object} Stats
// @Router   /quotations/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	id, _ := auth.FromContext(c)
	st, err := h.svc.Stats(c.Request.Context(), id.Scope())
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Extend godoc
// @Summary  Extend a quotation's expiry by 1 to 90 days
// @Tags     quotations
// @Accept   json
// @Produce  json
// @Param    id   path int           true "reservation id"
// @Param    body body ExtendRequest true "days"
// @Success  200 {object} Result
// @Failure  422 {object} Result
// @Router   /quotations/{id}/extend [post]
func (h *Handler) Extend(c *gin.Context) {
	qid, id, ok := h.managed(c)
	if !ok {
		return
	}
	var req ExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	res, err := h.svc.ExtendExpiry(c.Request.Context(), qid, req.Days, id.UserID)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	writeResult(c, res, res)
}

// Convert godoc
// @Summary  Convert a quotation into an approved reservation
// @Tags     quotations
// @Accept   json
// @Produce  json
// @Param    id   path int            true "reservation id"
// @Param    body body ConvertRequest true "payment"
// @Success  200 {object} ConvertResponse
// @Failure  422 {object} Result
// @Router   /quotations/{id}/convert [post]
func (h *Handler) Convert(c *gin.Context) {
	qid, id, ok := h.managed(c)
	if !ok {
		return
	}
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	res, err := h.svc.Convert(c.Request.Context(), qid, ConvertInput{
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
		ApproverID:    id.UserID,
	})
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	out := ConvertResponse{Result: res.Result}
	if res.Reservation != nil {
		r := reservations.ToResponse(res.Reservation)
		out.Reservation = &r
	}
	writeResult(c, res.Result, out)
}

func (h *Handler) Delete(c *gin.Context) {
	qid, id, ok := h.managed(c)
	if !ok {
		return
	}
	res, err := h.svc.Delete(c.Request.Context(), qid, id.UserID)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	if res.OK {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, res)
}

// managed parses the id and enforces the company access rule.
func (h *Handler) managed(c *gin.Context) (int64, auth.Identity, bool) {
	qid, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || qid <= 0 {
		apierr.BadRequest(c, "id must be a positive number")
		return 0, auth.Identity{}, false
	}
	id, _ := auth.FromContext(c)
	allowed, err := h.svc.CanManage(c.Request.Context(), qid, id)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return 0, auth.Identity{}, false
	}
	if !allowed {
		apierr.Respond(c, h.log, apierr.Forbidden("no line of this quotation belongs to your company"))
		return 0, auth.Identity{}, false
	}
	return qid, id, true
}

func writeResult(c *gin.Context, res Result, body any) {
	if !res.OK {
		c.JSON(http.StatusUnprocessableEntity, body)
		return
	}
	c.JSON(http.StatusOK, body)
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
