package app

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"Gin_postgres_redis_equipment_tracker/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config
}

// Config 从环境变量读取
type Config struct {
	RedisAddr      string
	RedisPwd       string
	WebOrigin      string
	CacheTTL       time.Duration // catalog+ledger snapshot staleness bound
	CartTTL        time.Duration // session cart expiry
	StrictCheckout bool          // re-check availability inside the checkout tx
}

func MustNew() *App {
	cfg := loadConfig()

	// --- DB: Postgres ---
	dbConn := db.ConnectDB()

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	a := &App{
		Router: r, DB: dbConn, RDB: rdb, Config: cfg,
	}
	return a
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	seconds := func(k, def string, fallback time.Duration) time.Duration {
		if n, err := strconv.Atoi(get(k, def)); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		return fallback
	}

	strict := true
	if v, err := strconv.ParseBool(get("STRICT_CHECKOUT", "true")); err == nil {
		strict = v
	}

	return Config{
		RedisAddr: get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:  os.Getenv("REDIS_PASSWORD"),
		WebOrigin: get("WEB_ORIGIN", "http://localhost:3000"),
		// 原系统表格读取缓存为 20 秒
		CacheTTL:       seconds("CACHE_TTL_SECONDS", "20", 20*time.Second),
		CartTTL:        seconds("CART_TTL_SECONDS", "1800", 30*time.Minute),
		StrictCheckout: strict,
	}
}
