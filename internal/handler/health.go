package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health probes Postgres and Redis. Postgres down means no register can
// sell, so it answers 503; Redis down only degrades the price cache and the
// receipt queue, so selling continues and the probe stays 200 with a
// "degraded" status.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		pgStatus := "up"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			pgStatus = "down"
		}

		redisStatus := "up"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "down"
		}

		status := http.StatusOK
		overall := "ok"
		switch {
		case pgStatus == "down":
			status = http.StatusServiceUnavailable
			overall = "unavailable"
		case redisStatus == "down":
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status":   overall,
			"postgres": pgStatus,
			"redis":    redisStatus,
		})
	}
}
