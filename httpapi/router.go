package httpapi

import (
	"net/http"

	"report-backend/auth"
	"report-backend/config"
	"report-backend/metrics"
	"report-backend/orm"
	"report-backend/report"
	"report-backend/taxonomy"
	"report-backend/testimonial"

	"github.com/gin-gonic/gin"
)

// Services bundles everything the router wires behind routes.
type Services struct {
	Auth         *auth.Service
	Reports      *report.Service
	Taxonomy     *taxonomy.Service
	Testimonials *testimonial.Service
	Users        UserStore
}

// NewRouter builds the full route table. Read endpoints are public;
// writes require a token, with reporter or admin roles matching the
// operation.
func NewRouter(services Services) *gin.Engine {
	if config.Cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())
	router.Use(metrics.Middleware(metrics.NewMetrics("http")))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	if config.Cfg.Storage.Type == config.StorageFilesystem {
		router.Static("/api/uploads/reports", config.Cfg.Storage.UploadDir)
	}

	authHandlers := NewAuthHandlers(services.Auth, services.Users)
	reportHandlers := NewReportHandlers(services.Reports)
	taxonomyHandlers := NewTaxonomyHandlers(services.Taxonomy)
	testimonialHandlers := NewTestimonialHandlers(services.Testimonials)
	userHandlers := NewUserHandlers(services.Users)

	authed := AuthMiddleware(services.Auth)
	reporterOrAdmin := RequireRoles(orm.RoleReporter, orm.RoleAdmin)
	adminOnly := RequireRoles(orm.RoleAdmin)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandlers.Register)
		authGroup.POST("/login", authHandlers.Login)
		authGroup.GET("/me", authed, authHandlers.Me)
	}

	reports := api.Group("/reports")
	{
		reports.GET("", reportHandlers.List)
		reports.GET("/latest", reportHandlers.Latest)
		reports.GET("/my/list", authed, reporterOrAdmin, reportHandlers.ListMine)
		reports.GET("/slug/:slug", reportHandlers.GetBySlug)
		reports.GET("/:id", reportHandlers.Get)
		reports.POST("/:id/view", reportHandlers.IncrementView)

		reports.POST("", authed, reporterOrAdmin, reportHandlers.Create)
		reports.PATCH("/:id", authed, reporterOrAdmin, reportHandlers.Update)
		reports.POST("/:id/publish", authed, reporterOrAdmin, reportHandlers.Publish)
		reports.POST("/:id/archive", authed, adminOnly, reportHandlers.Archive)
		reports.DELETE("/:id", authed, adminOnly, reportHandlers.Delete)

		reports.POST("/:id/images", authed, reporterOrAdmin, reportHandlers.UploadImage)
		reports.PATCH(
			"/:id/images/:imageId/order",
			authed, reporterOrAdmin, reportHandlers.ReorderImage,
		)
		reports.DELETE(
			"/:id/images/:imageId",
			authed, reporterOrAdmin, reportHandlers.DeleteImage,
		)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", taxonomyHandlers.ListCategories)
		categories.GET("/:id", taxonomyHandlers.GetCategory)
		categories.POST("", authed, adminOnly, taxonomyHandlers.CreateCategory)
		categories.PUT("/:id", authed, adminOnly, taxonomyHandlers.UpdateCategory)
		categories.DELETE("/:id", authed, adminOnly, taxonomyHandlers.DeleteCategory)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", taxonomyHandlers.ListTags)
		tags.GET("/:id", taxonomyHandlers.GetTag)
		tags.POST("", authed, adminOnly, taxonomyHandlers.CreateTag)
		tags.PUT("/:id", authed, adminOnly, taxonomyHandlers.UpdateTag)
		tags.DELETE("/:id", authed, adminOnly, taxonomyHandlers.DeleteTag)
	}

	testimonials := api.Group("/testimonials")
	{
		testimonials.GET("", testimonialHandlers.List)
		testimonials.GET("/:id", testimonialHandlers.Get)
		testimonials.POST("", authed, adminOnly, testimonialHandlers.Create)
		testimonials.PUT("/:id", authed, adminOnly, testimonialHandlers.Update)
		testimonials.DELETE("/:id", authed, adminOnly, testimonialHandlers.Delete)
	}

	users := api.Group("/users", authed, adminOnly)
	{
		users.GET("", userHandlers.List)
		users.GET("/:id", userHandlers.Get)
		users.PATCH("/:id", userHandlers.Update)
		users.DELETE("/:id", userHandlers.Delete)
	}

	return router
}
