package pkg

import (
	"context"
	"time"
)

type locationCtxKey struct{}

// ContextWithLocation stores the caller's time zone, used to resolve their local day.
func ContextWithLocation(ctx context.Context, loc *time.Location) context.Context {
	return context.WithValue(ctx, locationCtxKey{}, loc)
}

// LocationFromContext returns the caller's time zone, UTC when none was resolved.
func LocationFromContext(ctx context.Context) *time.Location {
	if loc, ok := ctx.Value(locationCtxKey{}).(*time.Location); ok && loc != nil {
		return loc
	}
	return time.UTC
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ISOWeekday maps Monday..Saturday to 1..6 and Sunday to 7.
func ISOWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}
