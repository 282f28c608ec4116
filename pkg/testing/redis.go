package testing

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

// LiveRedisClient connects to the redis at GYMAPP_TEST_REDIS_HOST (password in
// GYMAPP_TEST_REDIS_PASS) and skips the test when the host is not set.
// Every key the test writes should carry keyPrefix; they are removed on cleanup.
func LiveRedisClient(t *testing.T, keyPrefix string) (context.Context, *redis.Client) {
	t.Helper()

	redisHost := os.Getenv("GYMAPP_TEST_REDIS_HOST")
	if redisHost == "" {
		t.Skip("GYMAPP_TEST_REDIS_HOST not set, skipping live redis test")
	}
	redisPort := os.Getenv("GYMAPP_TEST_REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}
	t.Logf("using redis: [%s:%s]", redisHost, redisPort)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(redisHost, redisPort),
		Password: os.Getenv("GYMAPP_TEST_REDIS_PASS"),
		DB:       0, // use default DB
	})

	pingRes, err := rdb.Ping(ctx).Result()
	require.NoError(t, err)
	t.Logf("redis ping res: %s", pingRes)

	t.Cleanup(func() {
		keys, err := rdb.Keys(context.Background(), keyPrefix+"*").Result()
		if err == nil && len(keys) > 0 {
			rdb.Del(context.Background(), keys...)
		}
		_ = rdb.Close()
		cancel()
	})

	return ctx, rdb
}
