//go:build integration

// Package testutil holds the Redis helpers of the integration tests. They
// run against a disposable Redis:
//
//	docker run -d --name fabricgen-test-redis redis:7
//	go test -tags integration ./...
package testutil

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// TestDB is the database integration tests own; it is flushed per test.
const TestDB = 9

const containerName = "fabricgen-test-redis"

// RedisAddr is FABRICGEN_TEST_REDIS_ADDR, else the test container's
// address, else "".
func RedisAddr() string {
	if addr := os.Getenv("FABRICGEN_TEST_REDIS_ADDR"); addr != "" {
		return addr
	}
	out, err := exec.Command("docker", "inspect",
		"--format", "{{range .NetworkSettings.Networks}}{{.IPAddress}}{{end}}",
		containerName).Output()
	if ip := strings.TrimSpace(string(out)); err == nil && ip != "" {
		return ip + ":6379"
	}
	return ""
}

// SkipIfNoRedis skips the test unless the test Redis answers a PING.
func SkipIfNoRedis(t *testing.T) {
	t.Helper()
	addr := RedisAddr()
	if addr == "" {
		t.Skipf("no test Redis: set FABRICGEN_TEST_REDIS_ADDR or start %s", containerName)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("test Redis not reachable at %s: %v", addr, err)
	}
}

// RedisClient returns a client on TestDB, flushed now and closed after the
// test.
func RedisClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: RedisAddr(), DB: TestDB})
	t.Cleanup(func() { client.Close() })
	if err := client.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("flushing DB %d: %v", TestDB, err)
	}
	return client
}

// SeedHash writes fields into the hash "table|key".
func SeedHash(t *testing.T, client *redis.Client, table, key string, fields map[string]string) {
	t.Helper()
	args := make([]any, 0, 2*len(fields))
	for k, v := range fields {
		args = append(args, k, v)
	}
	if err := client.HSet(context.Background(), table+"|"+key, args...).Err(); err != nil {
		t.Fatalf("seeding %s|%s: %v", table, key, err)
	}
}

// ReadEntry returns the hash "table|key"; a missing key reads as empty.
func ReadEntry(t *testing.T, client *redis.Client, table, key string) map[string]string {
	t.Helper()
	vals, err := client.HGetAll(context.Background(), table+"|"+key).Result()
	if err != nil {
		t.Fatalf("reading %s|%s: %v", table, key, err)
	}
	return vals
}

// KeyCount is the number of keys in TestDB.
func KeyCount(t *testing.T, client *redis.Client) int {
	t.Helper()
	n, err := client.DBSize(context.Background()).Result()
	if err != nil {
		t.Fatalf("DBSIZE on DB %d: %v", TestDB, err)
	}
	return int(n)
}

// Context is cancelled after 30 seconds or at the end of the test.
func Context(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
