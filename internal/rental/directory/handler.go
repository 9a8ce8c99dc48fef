package directory

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventrent-backend/internal/platform/apierr"
	"eventrent-backend/internal/platform/auth"
)

type Handler struct {
	store *Store
	log   *zap.Logger
}

func RegisterRoutes(r gin.IRoutes, store *Store, log *zap.Logger) {
	h := &Handler{store: store, log: log}
	r.GET("/companies", h.ListCompanies)
	r.GET("/clients/me", h.Me)
}

func (h *Handler) ListCompanies(c *gin.Context) {
	items, err := h.store.ListActiveCompanies(c.Request.Context())
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Me(c *gin.Context) {
	id, _ := auth.FromContext(c)
	cl, err := h.store.GetClientByUserID(c.Request.Context(), id.UserID)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}
	if cl == nil {
		apierr.Respond(c, h.log, apierr.NotFound("no client record for this account"))
		return
	}
	c.JSON(http.StatusOK, cl)
}
