package middleware

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

const TimezoneHeader = "X-Timezone"

type locationResolver interface {
	Location(ctx context.Context, ip string) (*time.Location, error)
}

// Timezone puts the caller's location into the request context, so "today" means the
// caller's local day. An explicit X-Timezone header wins, then the IP lookup (when a
// resolver is set), then the fallback.
func Timezone(resolver locationResolver, fallback *time.Location) func(next http.Handler) http.Handler {
	if fallback == nil {
		fallback = time.UTC
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(pkg.ContextWithLocation(r.Context(), resolveLocation(r, resolver, fallback))))
		})
	}
}

func resolveLocation(r *http.Request, resolver locationResolver, fallback *time.Location) *time.Location {
	if tz := r.Header.Get(TimezoneHeader); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err == nil {
			return loc
		}
		log.Debugf("ignoring invalid %s header [%s]: %s", TimezoneHeader, tz, err)
	}

	if resolver == nil {
		return fallback
	}

	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		return fallback
	}
	loc, err := resolver.Location(r.Context(), ip)
	if err != nil {
		log.Debugf("resolve location for %s: %s", ip, err)
		return fallback
	}
	return loc
}
