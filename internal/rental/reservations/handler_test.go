package reservations_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"eventrent-backend/internal/platform/auth"
	"eventrent-backend/internal/rental/reservations"
)

func newRouter(f fixture, id auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxIdentityKey, id)
		c.Next()
	})
	reservations.RegisterRoutes(r, f.svc, zap.NewNop())
	return r
}

func TestHandler_UpdateStatusForeignCompany(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().CompanyIDs(gomock.Any(), int64(9)).Return([]int64{2}, nil)
	r := newRouter(f, staff(7))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/reservations/9/status", strings.NewReader(`{"status":"Confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestHandler_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().CompanyIDs(gomock.Any(), int64(9)).Return([]int64{2}, nil)
	f.repo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).Return(true, nil)
	f.sink.EXPECT().Record(gomock.Any(), gomock.Any())
	r := newRouter(f, staff(2))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/reservations/9/status", strings.NewReader(`{"status":"Completed"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestHandler_ClientsCannotReachVendorRoutes(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f, auth.Identity{UserID: "c", Role: auth.RoleClient, AccessLevel: 3})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reservations/stats", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestHandler_Stats(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Stats(gomock.Any(), auth.SingleCompany(2)).Return(reservations.Stats{
		Total:          4,
		Pending:        1,
		Confirmed:      2,
		Cancelled:      1,
		Revenue:        decimal.RequireFromString("1250.50"),
		PendingPayment: decimal.RequireFromString("300"),
	}, nil)
	r := newRouter(f, staff(2))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reservations/stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var st reservations.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Total != 4 || !st.Revenue.Equal(decimal.RequireFromString("1250.5")) {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestHandler_AvailabilityValidation(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f, staff(2))

	for _, url := range []string{
		"/reservations/availability?date=14-06-2025",
		"/reservations/availability?company_id=x&date=2025-06-14",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", url, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reservations/availability?company_id=3&date=2025-06-14", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign company: status = %d", w.Code)
	}
}

func TestHandler_Availability(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().CountOnDate(gomock.Any(), int64(2), gomock.Any()).Return(3, nil)
	r := newRouter(f, staff(2))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reservations/availability?date=2025-06-14", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Available bool `json:"available"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if !body.Available {
		t.Errorf("expected available=true")
	}
}
