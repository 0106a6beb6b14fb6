package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yumeno/gachapon-api/internal/config"
	"github.com/yumeno/gachapon-api/internal/middleware"
	"github.com/yumeno/gachapon-api/pkg/auth"
)

const (
	loginRateMax    = 12
	loginRateWindow = 15 * time.Minute
)

// NewRouter wires the gin engine: CORS, public catalog reads, authenticated
// roll routes and admin-only catalog mutations.
func NewRouter(cfg *config.Config, tokens *auth.TokenService, authHandler *AuthHandler, gachaHandler *GachaHandler, rollHandler *RollHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.ClientOrigins)))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "version": "gachapon-api"})
	})

	loginLimiter := middleware.NewRateLimiter(loginRateMax, loginRateWindow)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", loginLimiter.Middleware(), authHandler.Login)
		authGroup.GET("/me", middleware.RequireAuth(tokens), authHandler.Me)
	}

	gachas := r.Group("/api/gachas")
	{
		gachas.GET("", gachaHandler.List)
		gachas.GET("/:id", gachaHandler.Get)

		admin := gachas.Group("", middleware.RequireAuth(tokens), middleware.RequireRole("admin"))
		{
			admin.POST("", gachaHandler.Create)
			admin.PUT("/:id", gachaHandler.Update)
			admin.DELETE("/:id", gachaHandler.Delete)
		}

		rolls := gachas.Group("", middleware.RequireAuth(tokens))
		{
			rolls.POST("/:id/roll", rollHandler.Roll)
			rolls.POST("/:id/preview", rollHandler.Preview)
		}
	}

	r.GET("/api/me/rolls", middleware.RequireAuth(tokens), rollHandler.History)

	return r
}

// corsConfig allows the configured client origins, accepting localhost and
// 127.0.0.1 as interchangeable during local development.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	cfg.AllowOriginFunc = func(origin string) bool {
		for _, allowed := range origins {
			if origin == allowed {
				return true
			}
		}
		normalized := strings.TrimPrefix(strings.TrimPrefix(origin, "http://"), "https://")
		for _, allowed := range origins {
			if strings.Contains(allowed, "localhost") && strings.HasPrefix(normalized, "127.0.0.1") {
				return true
			}
			if strings.Contains(allowed, "127.0.0.1") && strings.HasPrefix(normalized, "localhost") {
				return true
			}
		}
		return false
	}
	return cfg
}
