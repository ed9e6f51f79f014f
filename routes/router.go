package routes

import (
	"log/slog"
	"net/http"

	"blog-cms/config"
	"blog-cms/handlers"
	"blog-cms/helper"
	"blog-cms/middleware"
	"blog-cms/repositories"
	"blog-cms/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers onto a gin engine. The
// returned cleanup stops background work started for the router.
func NewRouter(cfg *config.Config, db *gorm.DB, log *slog.Logger) (*gin.Engine, func()) {
	if log == nil {
		log = slog.Default()
	}
	httpHelper := helper.NewHTTPHelper(log)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	tagRepo := repositories.NewTagRepository(db)

	// Initialize services
	tokens := services.NewTokenService(cfg.SigningSecret(), nil)
	authService := services.NewAuthService(userRepo, tokens, cfg.BcryptCost, log)
	articleService := services.NewArticleService(articleRepo, log)
	tagService := services.NewTagService(tagRepo, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, httpHelper, cfg.SecureCookies())
	articleHandler := handlers.NewArticleHandler(articleService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)

	gate := middleware.NewAccessGate(tokens, httpHelper, middleware.DefaultPublicRoutes())
	loginLimiter := middleware.NewLoginRateLimiter(cfg.LoginRatePerMinute, 5, httpHelper)

	router := gin.New()
	// ClientIP is the peer address unless the peer is a listed proxy
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error("invalid trusted proxies, trusting none", "error", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(
		middleware.Recovery(httpHelper),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
		gate.Middleware(),
	)

	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			log.Error("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		admin := api.Group("/admin")
		{
			admin.POST("/login", loginLimiter.Middleware(), authHandler.Login)
			admin.POST("/logout", authHandler.Logout)
		}

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.GetArticles)
			articles.GET("/count", articleHandler.CountArticles)
			articles.GET("/:id", articleHandler.GetArticle)
			articles.POST("", articleHandler.CreateArticle)
			articles.PUT("/:id", articleHandler.UpdateArticle)
			articles.DELETE("/:id", articleHandler.DeleteArticle)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.GetTags)
			tags.GET("/:id", tagHandler.GetTag)
			tags.POST("", tagHandler.CreateTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		httpHelper.SendNotFoundError(c, "route not found")
	})

	return router, loginLimiter.Close
}
