package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var inicioServidor = time.Now()

// Health verifica postgres e redis e responde 200 ou 503. Não vaza
// credenciais nem detalhes de erro; o corpo só diz o que está fora.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		servicos := gin.H{}
		saudavel := true

		servicos["postgres"] = "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			servicos["postgres"] = "indisponivel"
			saudavel = false
		}

		servicos["redis"] = "ok"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			servicos["redis"] = "indisponivel"
			saudavel = false
		}

		status := http.StatusOK
		if !saudavel {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":       saudavel,
			"servicos": servicos,
			"uptime":   time.Since(inicioServidor).Round(time.Second).String(),
		})
	}
}
