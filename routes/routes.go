package routes

import (
	"log"

	"backend/config"
	"backend/controllers"
	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(hub *services.RealtimeHub, push *services.PushService) *gin.Engine {
	r := gin.Default()

	childSvc := services.NewChildService(config.DB)
	mealSvc := services.NewMealLogService(config.DB, childSvc)
	reportSvc := services.NewReportService(config.DB, childSvc)
	forumSvc := services.NewForumService(config.DB)
	contentSvc := services.NewContentService(config.DB)

	photoSvc, err := services.NewPhotoService()
	if err != nil {
		log.Printf("photo suggestions disabled: %v", err)
	}

	childCtl := controllers.NewChildController(childSvc)
	mealCtl := controllers.NewMealLogController(mealSvc, photoSvc)
	reportCtl := controllers.NewReportController(reportSvc)
	forumCtl := controllers.NewForumController(forumSvc)
	contentCtl := controllers.NewContentController(contentSvc)
	deviceCtl := controllers.NewDeviceController(push)
	realtimeCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot", controllers.ForgotPassword)
		auth.POST("/reset", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.DELETE("/profile", controllers.DeleteAccount)
		user.GET("/alerts", controllers.ListAlerts)
		user.POST("/alerts/read", controllers.MarkAlertsRead)
		user.POST("/devices", deviceCtl.Register)
		user.POST("/notifications/toggle", controllers.ToggleNotifications)
	}

	children := r.Group("/children")
	children.Use(middlewares.AuthMiddleware())
	{
		children.POST("", childCtl.Create)
		children.GET("", childCtl.List)
		children.GET("/:id", childCtl.Get)
		children.PUT("/:id", childCtl.Update)
		children.DELETE("/:id", childCtl.Delete)
		children.POST("/:id/meals", mealCtl.Create)
		children.GET("/:id/meals", mealCtl.ListByChild)
	}

	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.GET("/:id", mealCtl.Get)
		meals.PUT("/:id", mealCtl.Update)
		meals.DELETE("/:id", mealCtl.Delete)
		meals.POST("/suggest", mealCtl.SuggestFood)
	}

	reports := r.Group("/reports")
	reports.Use(middlewares.AuthMiddleware())
	{
		reports.POST("/generate", reportCtl.Generate)
		reports.GET("", reportCtl.List)
		reports.GET("/:id", reportCtl.Get)
		reports.DELETE("/:id", reportCtl.Delete)
	}

	forum := r.Group("/forum")
	forum.Use(middlewares.AuthMiddleware())
	{
		forum.POST("", forumCtl.CreatePost)
		forum.GET("", forumCtl.ListPosts)
		forum.GET("/trending", forumCtl.Trending)
		forum.GET("/:id", forumCtl.GetPost)
		forum.DELETE("/:id", forumCtl.DeletePost)
		forum.POST("/:id/like", forumCtl.ToggleLike)
		forum.POST("/:id/vote", forumCtl.Vote)
		forum.POST("/:id/comments", forumCtl.AddComment)
		forum.GET("/:id/comments", forumCtl.ListComments)
		forum.DELETE("/comments/:id", forumCtl.DeleteComment)
	}

	// Content library: reads for everyone signed in, writes admin-only.
	recipes := r.Group("/recipes")
	recipes.Use(middlewares.AuthMiddleware())
	{
		recipes.GET("", contentCtl.ListRecipes)
		recipes.GET("/:id", contentCtl.GetRecipe)

		admin := recipes.Group("")
		admin.Use(middlewares.RequireAdmin())
		{
			admin.POST("", contentCtl.CreateRecipe)
			admin.PUT("/:id", contentCtl.UpdateRecipe)
			admin.DELETE("/:id", contentCtl.DeleteRecipe)
		}
	}

	articles := r.Group("/articles")
	articles.Use(middlewares.AuthMiddleware())
	{
		articles.GET("", contentCtl.ListArticles)
		articles.GET("/:id", contentCtl.GetArticle)

		admin := articles.Group("")
		admin.Use(middlewares.RequireAdmin())
		{
			admin.POST("", contentCtl.CreateArticle)
			admin.PUT("/:id", contentCtl.UpdateArticle)
			admin.DELETE("/:id", contentCtl.DeleteArticle)
		}
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/alerts", realtimeCtl.AlertsWS)
	}

	return r
}
