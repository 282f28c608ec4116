package geoip

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/coocood/freecache"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

const (
	megabyte           = 1024 * 1024
	cacheExpirySeconds = 24 * 60 * 60
)

// Locator resolves a client IP to its IANA time zone through ipinfo.io. Answers are
// memoized in an in-process cache, so one IP costs at most one lookup per day.
type Locator struct {
	client   *ipinfo.Client
	cache    *freecache.Cache
	fallback *time.Location
}

func NewLocator(httpClient *http.Client, token string, cacheSizeMegabytes int, fallback *time.Location) *Locator {
	if cacheSizeMegabytes <= 0 {
		cacheSizeMegabytes = 1
	}
	if fallback == nil {
		fallback = time.UTC
	}
	return &Locator{
		client:   ipinfo.NewClient(httpClient, nil, token),
		cache:    freecache.NewCache(cacheSizeMegabytes * megabyte),
		fallback: fallback,
	}
}

// Location returns the time zone for ip. On any failure it returns the fallback
// location together with the error.
func (l *Locator) Location(ctx context.Context, ip string) (_ *time.Location, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "geoip.location")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.ip", ip))

	if ip == "" || ip == pkg.LocalIP {
		return l.fallback, nil
	}

	cacheKey := []byte("tz::" + ip)
	if tzName, err := l.cache.Get(cacheKey); err == nil {
		span.SetAttributes(attribute.Bool("user.ip.from-cache", true))
		if loc, err := time.LoadLocation(string(tzName)); err == nil {
			return loc, nil
		}
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return l.fallback, fmt.Errorf("invalid ip [%s]", ip)
	}

	info, err := l.client.GetIPInfo(parsedIP)
	if err != nil {
		return l.fallback, fmt.Errorf("ipinfo lookup: %w", err)
	}
	if info == nil || info.Timezone == "" {
		log.Debugf("no time zone known for ip %s", ip)
		return l.fallback, nil
	}

	loc, err := time.LoadLocation(info.Timezone)
	if err != nil {
		return l.fallback, fmt.Errorf("load location [%s]: %w", info.Timezone, err)
	}

	if err := l.cache.Set(cacheKey, []byte(info.Timezone), cacheExpirySeconds); err != nil {
		log.Errorf("cache time zone for %s: %s", ip, err)
	}

	return loc, nil
}
