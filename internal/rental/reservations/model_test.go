package reservations

import "testing"

func TestFormatCode(t *testing.T) {
	cases := []struct {
		year int
		seq  int64
		want string
	}{
		{2025, 1, "RES-25-000001"},
		{2025, 42, "RES-25-000042"},
		{2031, 999999, "RES-31-999999"},
		{2100, 7, "RES-00-000007"},
	}
	for _, c := range cases {
		if got := FormatCode(c.year, c.seq); got != c.want {
			t.Errorf("FormatCode(%d, %d) = %q, want %q", c.year, c.seq, got, c.want)
		}
	}
}

func TestStatusSettable(t *testing.T) {
	for _, s := range []Status{StatusRequested, StatusConfirmed, StatusCancelled, StatusCompleted, StatusInProgress} {
		if !s.Settable() {
			t.Errorf("%s should be settable", s)
		}
	}
	for _, s := range []Status{StatusApproved, "Shipped", ""} {
		if s.Settable() {
			t.Errorf("%q should not be settable", s)
		}
	}
	if !StatusApproved.Known() {
		t.Errorf("Approved is a known status")
	}
}

func TestPageNormalized(t *testing.T) {
	if p := (Page{}).Normalized(); p.Limit != 50 || p.Offset != 0 {
		t.Errorf("zero page = %+v", p)
	}
	if p := (Page{Limit: 1000, Offset: -3}).Normalized(); p.Limit != 50 || p.Offset != 0 {
		t.Errorf("out of range page = %+v", p)
	}
	if p := (Page{Limit: 20, Offset: 40}).Normalized(); p.Limit != 20 || p.Offset != 40 {
		t.Errorf("valid page changed: %+v", p)
	}
}
