package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/arlo-voss/homedns/internal/api/handlers"

	_ "github.com/arlo-voss/homedns/internal/api/docs" // swagger docs
)

// RegisterRoutes wires the admin surface's routes: Swagger UI plus the
// health and stats endpoints.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
}
