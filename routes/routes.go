package routes

import (
	"templekovan-backend/config"
	"templekovan-backend/controllers"
	"templekovan-backend/models"
	"templekovan-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://templekovan.vercel.app",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public pages
	r.GET("/services", controllers.GetActiveCatalog)
	r.GET("/nallaneram", controllers.GetNallaNeram)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Profile routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.POST("", controllers.CreateProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.GET("/family", controllers.GetFamily)
			profile.POST("/family", controllers.LinkFamilyMember)
		}

		// Booking routes
		services := api.Group("/services")
		{
			services.POST("/datecheck", controllers.DateCheck)
			services.POST("/user", controllers.CreateBooking)
			services.GET("/user", controllers.GetUserBookings)

			approver := services.Group("", utils.RequireRole(models.RoleApprover))
			{
				approver.POST("/approver", controllers.DecideBooking)
				approver.GET("/pending", controllers.GetPendingBookings)
				approver.GET("/limits", controllers.GetServiceLimits)
				approver.PUT("/limits", controllers.UpsertServiceLimit)
			}

			// Catalog CRUD, Admin-gated
			catalog := services.Group("/addservices", utils.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
			{
				catalog.GET("", controllers.GetCatalog)
				catalog.POST("", controllers.CreateCatalogEntry)
				catalog.PUT("", controllers.UpdateCatalogEntry)
				catalog.DELETE("", controllers.DeleteCatalogEntry)
			}
		}

		// Reports routes
		reportController := controllers.ReportController{}
		reports := api.Group("/reports", utils.RequireRole(models.RoleAdmin, models.RoleApprover, models.RoleSuperAdmin))
		{
			reports.GET("", reportController.GetReport)
			reports.GET("/export", reportController.ExportReport)
		}

		// Dashboard routes
		api.GET("/dashboard", utils.RequireRole(models.RoleAdmin, models.RoleApprover, models.RoleSuperAdmin),
			controllers.GetDashboardOverview)

		// Announcement routes
		posts := api.Group("/posts")
		{
			posts.GET("", controllers.GetPosts)
			posts.POST("", utils.RequireRole(models.RoleAdmin, models.RoleSuperAdmin), controllers.CreatePost)
			posts.DELETE("/:id", controllers.DeletePost)
			posts.POST("/:id/like", controllers.LikePost)
			posts.POST("/:id/dislike", controllers.DislikePost)
			posts.POST("/:id/comments", controllers.CreateComment)
		}

		// Almanac maintenance
		almanac := api.Group("/nallaneram", utils.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
		{
			almanac.PUT("", controllers.UpsertNallaNeram)
			almanac.DELETE("/:id", controllers.DeleteNallaNeram)
		}

		// Admin user management
		admin := api.Group("/admin", utils.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
		{
			admin.GET("/users", controllers.GetUsers)
			admin.PUT("/users/:id/roles", controllers.UpdateUserRoles)
			admin.PUT("/users/:id/uniqueid", controllers.AssignUniqueID)
			admin.PUT("/users/:id/deactivate", controllers.DeactivateUser)
			admin.GET("/users/:id/history", controllers.GetProfileHistory)
		}
	}

	return r
}
