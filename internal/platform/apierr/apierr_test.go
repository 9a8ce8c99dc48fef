package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Invalid("x"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Forbidden("x"), http.StatusForbidden},
		{Internal("x"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("x")), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestBodyFromHidesInternals(t *testing.T) {
	b := BodyFrom(errors.New("dial tcp 10.0.0.3:3306: connection refused"))
	if b.Error.Code != CodeInternal || b.Error.Message != "internal server error" {
		t.Fatalf("unexpected body: %+v", b)
	}

	b = BodyFrom(Conflict("quotation expired"))
	if b.Error.Code != CodeConflict || b.Error.Message != "quotation expired" {
		t.Fatalf("unexpected body: %+v", b)
	}
}
