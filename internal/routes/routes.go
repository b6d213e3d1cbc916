package routes

import (
	_ "calldeskrest/docs"
	"calldeskrest/internal/config"
	"calldeskrest/internal/middleware"
	"calldeskrest/internal/service/directory"
	"calldeskrest/internal/service/formatting"
	"calldeskrest/internal/service/healthcheck"
	"calldeskrest/internal/service/tickets"
	"calldeskrest/internal/service/workspaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// InitiateRoutes is a function that initializes the routes for the application
func InitiateRoutes(engine *gin.Engine, cfg *config.App) {

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	healthGroup := engine.Group("/healthcheck")
	{
		healthGroup.GET("/", healthcheck.Health(cfg))
	}

	formatGroup := engine.Group("/format")
	{
		formatGroup.GET("/date", formatting.Date())
		formatGroup.GET("/phone", formatting.Phone())
	}

	// agent tokens are only checked when a secret is configured
	var guard []gin.HandlerFunc
	if secret := cfg.Settings.Server.JWTSecret; secret != "" {
		guard = append(guard, middleware.Auth(secret))
	}

	sessionGroup := engine.Group("/sessions", guard...)
	{
		sessionGroup.POST("", workspaces.Create(cfg))

		session := sessionGroup.Group("/:id", workspaces.Load(cfg))
		{
			session.DELETE("", workspaces.Dispose(cfg))

			session.GET("/tickets", tickets.GetView(cfg))
			session.POST("/tickets/next", tickets.NextPage(cfg))

			session.GET("/patients", directory.Patients(cfg))
			session.POST("/patients/next", directory.NextPatients(cfg))

			session.GET("/providers", directory.Providers(cfg))
			session.POST("/providers/next", directory.NextProviders(cfg))
		}
	}
}
