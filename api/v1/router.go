package v1

import (
	auditapi "go_backoffice/api/v1/audit"
	authapi "go_backoffice/api/v1/auth"
	dashboardapi "go_backoffice/api/v1/dashboard"
	"go_backoffice/api/v1/middleware"
	ordersapi "go_backoffice/api/v1/orders"
	presenceapi "go_backoffice/api/v1/presence"
	productsapi "go_backoffice/api/v1/products"
	usersapi "go_backoffice/api/v1/users"
	"go_backoffice/internal/audit"
	"go_backoffice/internal/config"
	"go_backoffice/internal/httpx"
	"go_backoffice/internal/presence"
	"go_backoffice/internal/rbac"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps bundles the services the router wires into handlers. The audit
// log and presence tracker are constructed once in main and injected.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	AuditLog *audit.Log
	Presence *presence.Tracker
}

// SetupRouter sets up the API routes
func SetupRouter(r *gin.Engine, deps Deps) {
	api := r.Group("/api")
	{
		api.GET("/ping", pingHandler)

		authHandler := authapi.NewHandler(deps.DB, deps.Cfg, deps.AuditLog, deps.Presence)
		api.POST("/auth/login", authHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/me", meHandler)

			dashboardHandler := dashboardapi.NewHandler(deps.DB)
			protected.GET("/dashboard", dashboardHandler.Get)

			auditHandler := auditapi.NewHandler(deps.AuditLog)
			protected.GET("/audit", middleware.RequireCapability(rbac.ViewAudit), auditHandler.List)
			protected.POST("/audit", auditHandler.Report)

			presenceHandler := presenceapi.NewHandler(deps.DB, deps.Presence)
			protected.POST("/presence/login", presenceHandler.Login)
			protected.POST("/presence/logout", presenceHandler.Logout)
			protected.GET("/presence/users", middleware.RequireCapability(rbac.ViewPresence), presenceHandler.Users)

			usersHandler := usersapi.NewHandler(deps.DB, deps.AuditLog)
			usersGroup := protected.Group("/users")
			{
				usersGroup.GET("", usersHandler.List)
				usersGroup.GET("/:id", usersHandler.Get)

				manage := usersGroup.Group("", middleware.RequireCapability(rbac.ManageUsers))
				{
					manage.POST("", usersHandler.Create)
					manage.PUT("/:id", usersHandler.Update)
					manage.DELETE("/:id", usersHandler.Delete)
				}
			}

			ordersHandler := ordersapi.NewHandler(deps.DB, deps.AuditLog)
			ordersGroup := protected.Group("/orders")
			{
				ordersGroup.GET("", ordersHandler.List)
				ordersGroup.GET("/:id", ordersHandler.Get)
				// Order create/update is open to any authenticated
				// actor; only delete is gated
				ordersGroup.POST("", ordersHandler.Create)
				ordersGroup.PUT("/:id", ordersHandler.Update)
				ordersGroup.DELETE("/:id", middleware.RequireCapability(rbac.ManageOrders), ordersHandler.Delete)
			}

			productsHandler := productsapi.NewHandler(deps.DB, deps.AuditLog)
			productsGroup := protected.Group("/products")
			{
				productsGroup.GET("", productsHandler.List)
				productsGroup.GET("/:id", productsHandler.Get)

				manage := productsGroup.Group("", middleware.RequireCapability(rbac.ManageProducts))
				{
					manage.POST("", productsHandler.Create)
					manage.PUT("/:id", productsHandler.Update)
					manage.DELETE("/:id", productsHandler.Delete)
				}
			}
		}
	}
}

// pingHandler handles the ping request using the unified response
func pingHandler(c *gin.Context) {
	httpx.OK(c, gin.H{"pong": true})
}

// meHandler returns the authenticated actor snapshot
func meHandler(c *gin.Context) {
	httpx.OK(c, middleware.ActorFrom(c))
}
