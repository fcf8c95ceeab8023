package api

import (
	"net/http"

	"exercise-api/internal/service"
	"exercise-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires the handlers and middleware onto the gin engine.
func SetupRoutes(
	router *gin.Engine,
	log logger.Logger,
	authService service.AuthService,
	exerciseService service.ExerciseService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	authRequired := AuthRequired(authService)
	authOptional := AuthOptional(authService)

	router.Use(RequestLogger(log))
	router.Use(MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh-token", authHandler.RefreshToken)
		authGroup.GET("/me", authRequired, authHandler.Me)
	}

	exerciseGroup := router.Group("/exercises")
	{
		exerciseGroup.GET("", authOptional, exerciseHandler.List)
		exerciseGroup.GET("/:id", authOptional, exerciseHandler.Get)

		exerciseGroup.POST("", authRequired, exerciseHandler.Create)

		// PATCH runs through the configurable permission guard; DELETE is a
		// hardcoded owner-only check inside the handler. The asymmetry is
		// deliberate and the two must not be unified.
		exerciseGroup.PATCH("/:id", authRequired,
			ModifyPermissionGuard(exerciseService, service.PermissionRules{
				AnyoneCanModifyPublicExercises: true,
				AllowNonOwnerModification:      true,
			}),
			exerciseHandler.Modify)

		exerciseGroup.DELETE("/:id", authRequired, exerciseHandler.Delete)
	}
}
