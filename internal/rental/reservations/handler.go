package reservations

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/rental/integrity"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func RegisterRoutes(r gin.IRoutes, svc *Service, log *zap.Logger) {
	h := &Handler{svc: svc, log: log}
	staff := auth.RequireRole(auth.RoleAdmin, auth.RoleStaff)

	r.POST("/reservations", h.Create)
	r.GET("/reservations/mine", h.ListMine)
	r.GET("/reservations", staff, h.ListForCompany)
	r.GET("/reservations/stats", staff, h.Stats)
	r.GET("/reservations/availability", staff, h.CheckAvailability)
	r.GET("/reservations/:id", h.Get)
	r.POST("/reservations/:id/items", staff, h.AddLineItem)
	r.PUT("/reservations/:id/status", staff, h.UpdateStatus)
}

// Create godoc
// @Summary  Create a multi-vendor reservation
// @Tags     reservations
// @Accept   json
// @Produce  json
// @Param    body body CreateReservationRequest true "reservation"
// @Success  201 {object} DetailResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Router   /reservations [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	id, _ := auth.FromContext(c)
	d, err := h.svc.SubmitReservation(c.Request.Context(), id, req)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.Header("Location", "/reservations/"+strconv.FormatInt(d.ID, 10))
	c.JSON(http.StatusCreated, toDetailResponse(d))
}

func (h *Handler) Get(c *gin.Context) {
	rid, ok := pathID(c)
	if !ok {
		return
	}
	id, _ := auth.FromContext(c)
	d, err := h.svc.GetReservation(c.Request.Context(), id, rid)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toDetailResponse(d))
}

func (h *Handler) ListMine(c *gin.Context) {
	id, _ := auth.FromContext(c)
	rows, err := h.svc.GetReservationsForClient(c.Request.Context(), id.UserID)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	out := make([]SummaryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, SummaryResponse{
			ReservationResponse: ToResponse(&rows[i].Reservation),
			CompanyCount:        rows[i].CompanyCount,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *Handler) ListForCompany(c *gin.Context) {
	var status *Status
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		st := Status(v)
		status = &st
	}
	p := Page{
		Limit:  atoiDef(c.Query("limit"), 50),
		Offset: atoiDef(c.Query("offset"), 0),
	}
	id, _ := auth.FromContext(c)
	rows, err := h.svc.GetReservationsForCompany(c.Request.Context(), id.Scope(), status, p)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	out := make([]ReservationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToResponse(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// Stats godoc
// @Summary  Reservation statistics for the caller's company
// @Tags     reservations
// @Produce  json
// @Success  200 {object} Stats
// @Router   /reservations/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	id, _ := auth.FromContext(c)
	st, err := h.svc.GetReservationStats(c.Request.Context(), id.Scope())
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	id, _ := auth.FromContext(c)
	companyID, hasCompany := id.Scope().CompanyID()
	if v := c.Query("company_id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			apierr.BadRequest(c, "company_id must be a positive number")
			return
		}
		if !id.Scope().Includes(n) {
			apierr.Respond(c, h.log, apierr.Forbidden("company outside of your scope"))
			return
		}
		companyID, hasCompany = n, true
	}
	if !hasCompany {
		apierr.BadRequest(c, "company_id is required")
		return
	}
	date, err := time.Parse(time.DateOnly, c.Query("date"))
	if err != nil {
		apierr.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}
	ok, err := h.svc.CheckAvailability(c.Request.Context(), companyID, date)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company_id": companyID, "date": date.Format(time.DateOnly), "available": ok})
}

func (h *Handler) AddLineItem(c *gin.Context) {
	rid, ok := pathID(c)
	if !ok {
		return
	}
	var req integrity.LineItem
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	id, _ := auth.FromContext(c)
	li, err := h.svc.AddLineItem(c.Request.Context(), id, rid, req)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toLineItemResponse(*li))
}

// UpdateStatus godoc
// @Summary  Change a reservation's status
// @Tags     reservations
// @Accept   json
// @Param    id   path int                 true "reservation id"
// @Param    body body UpdateStatusRequest true "status"
// @Success  204
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  403 {object} apierr.ErrorDTO
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /reservations/{id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	rid, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	id, _ := auth.FromContext(c)
	ctx := c.Request.Context()

	allowed, err := h.svc.CanManage(ctx, rid, id)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	if !allowed {
		apierr.Respond(c, h.log, apierr.Forbidden("no line of this reservation belongs to your company"))
		return
	}

	found, err := h.svc.UpdateReservationStatus(ctx, rid, req.Status, id.UserID, req.Reason)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	if !found {
		apierr.Respond(c, h.log, apierr.NotFound("reservation not found"))
		return
	}
	c.Status(http.StatusNoContent)
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
