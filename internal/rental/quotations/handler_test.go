package quotations_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/rental/quotations"
)

func TestHandler_ExtendOutOfRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, repo := newService(t)
	repo.EXPECT().CompanyIDs(gomock.Any(), int64(4)).Return([]int64{2}, nil)

	company := int64(2)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxIdentityKey, auth.Identity{UserID: "s", CompanyID: &company, Role: auth.RoleStaff, AccessLevel: 2})
	})
	quotations.RegisterRoutes(r, svc, zap.NewNop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/quotations/4/extend", strings.NewReader(`{"days":91}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var res quotations.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.OK || res.Message != quotations.MsgExtendRange {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestHandler_ForeignCompanyForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, repo := newService(t)
	repo.EXPECT().CompanyIDs(gomock.Any(), int64(4)).Return([]int64{2}, nil)

	company := int64(3)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxIdentityKey, auth.Identity{UserID: "s", CompanyID: &company, Role: auth.RoleStaff, AccessLevel: 2})
	})
	quotations.RegisterRoutes(r, svc, zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/quotations/4", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}
}
