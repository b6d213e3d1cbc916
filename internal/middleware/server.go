package middleware

import (
	"calldeskrest/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// SetupServer builds the gin engine with the global middleware chain
func SetupServer(cfg *config.App) (engine *gin.Engine) {

	gin.SetMode(gin.ReleaseMode)
	engine = gin.New()

	setupIds(engine)
	setupSemaphore(engine, cfg.Settings.Server.MaxRequestsGlobal)
	setupCors(engine, cfg.Settings.Server.AllowedOrigins)
	if cfg.Redis != nil {
		setupRateLimiter(engine, cfg)
	}
	setupLogger(engine, cfg.Logger)

	if cfg.Settings.Server.CertFile != "" && cfg.Settings.Server.KeyFile != "" {
		setupSSL(engine, cfg)
	}

	engine.Use(gin.Recovery())

	return engine
}

// setupSSL redirects plain HTTP requests to HTTPS
func setupSSL(engine *gin.Engine, cfg *config.App) {
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect: true,
		SSLHost:     ":" + cfg.Settings.Server.Port,
	})
	engine.Use(func(c *gin.Context) {
		// Process writes the redirect itself and reports it as an error
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			cfg.Logger.Debug("Secure middleware stopped request", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Abort()
			return
		}
		c.Next()
	})
}
