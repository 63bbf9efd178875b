package config

import (
    "context"
    "crypto/tls"
    "os"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the Redis used for rate limiting and the
// invoice cache.  It reads REDIS_ADDR, or REDIS_HOST and REDIS_PORT (which
// win when both are set), plus REDIS_PASSWORD, REDIS_DB and REDIS_TLS.  It
// returns nil when the server does not answer a ping within two seconds;
// callers then run without caching and rate limiting.
func NewRedisClient() *redis.Client {
    client := redis.NewClient(redisOptions())
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        _ = client.Close()
        return nil
    }
    return client
}

func redisOptions() *redis.Options {
    addr := envStr("REDIS_ADDR", "localhost:6379")
    if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
        addr = host + ":" + port
    }
    opts := &redis.Options{
        Addr:     addr,
        Password: os.Getenv("REDIS_PASSWORD"),
        DB:       envInt("REDIS_DB", 0),
    }
    if v := os.Getenv("REDIS_TLS"); strings.EqualFold(v, "true") || v == "1" {
        opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
    }
    return opts
}
