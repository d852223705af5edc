package service

import (
	"testing"
	"time"

	"github.com/finestedm/procalc/internal/domain"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, ok := domain.ParseDate(s)
	if !ok {
		t.Fatalf("bad test date %q", s)
	}
	return d
}

func datePtr(t *testing.T, s string) *time.Time {
	d := date(t, s)
	return &d
}
