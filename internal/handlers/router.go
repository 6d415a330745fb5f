package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/scolink/community-service/internal/auth"
	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/services"
	"github.com/scolink/community-service/internal/storage"
	"github.com/scolink/community-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	userHandler         *UserHandler
	taxonomyHandler     *TaxonomyHandler
	forumHandler        *ForumHandler
	assignmentHandler   *AssignmentHandler
	socialHandler       *SocialHandler
	notificationHandler *NotificationHandler
	dashboardHandler    *DashboardHandler
	bannerHandler       *BannerHandler
	uploadHandler       *UploadHandler
	authMiddleware      *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	tokens *auth.TokenManager,
	fileStore *storage.FileStore,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:         NewUserHandler(serviceManager.User(), logger),
		taxonomyHandler:     NewTaxonomyHandler(serviceManager.Taxonomy(), logger),
		forumHandler:        NewForumHandler(serviceManager.Forum(), logger),
		assignmentHandler:   NewAssignmentHandler(serviceManager.Assignment(), serviceManager.Export(), logger),
		socialHandler:       NewSocialHandler(serviceManager.Social(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		dashboardHandler:    NewDashboardHandler(serviceManager.Dashboard(), logger),
		bannerHandler:       NewBannerHandler(serviceManager.Banner(), logger),
		uploadHandler:       NewUploadHandler(serviceManager.Upload(), fileStore, logger),
		authMiddleware:      NewJWTAuthMiddleware(tokens, serviceManager.Auth()),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/auth/register", hm.authHandler.Register)
	v1.POST("/auth/login", hm.authHandler.Login)
	v1.GET("/branches", hm.taxonomyHandler.ListBranches)
	v1.GET("/levels", hm.taxonomyHandler.ListLevels)
	v1.GET("/subjects", hm.taxonomyHandler.ListSubjects)
	v1.GET("/banners", hm.bannerHandler.ListActive)
	v1.GET("/uploads/:name", hm.uploadHandler.Serve)

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		authed.GET("/auth/me", hm.authHandler.Me)

		users := authed.Group("/users")
		{
			users.GET("/search", hm.userHandler.Search)
			users.GET("/:id", hm.userHandler.GetProfile)
			users.PUT("/me", hm.userHandler.UpdateProfile)

			// Follow graph
			users.POST("/:id/follow", hm.socialHandler.Follow)
			users.DELETE("/:id/follow", hm.socialHandler.Unfollow)
			users.GET("/:id/is-following", hm.socialHandler.IsFollowing)
			users.GET("/:id/following", hm.socialHandler.Following)
			users.GET("/:id/followers", hm.socialHandler.Followers)

			// Teacher validation - Admins only
			users.GET("/teachers/pending", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.ListPendingTeachers)
			users.POST("/teachers/:id/validate", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.ValidateTeacher)
		}

		// Catalog management - Admins only
		taxonomy := authed.Group("")
		taxonomy.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			taxonomy.POST("/branches", hm.taxonomyHandler.CreateBranch)
			taxonomy.POST("/levels", hm.taxonomyHandler.CreateLevel)
			taxonomy.POST("/subjects", hm.taxonomyHandler.CreateSubject)
		}

		// Teacher subject selection
		teacherSubjects := authed.Group("/teacher-subjects")
		teacherSubjects.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher))
		{
			teacherSubjects.GET("", hm.taxonomyHandler.ListMySubjects)
			teacherSubjects.POST("", hm.taxonomyHandler.AssignSubject)
			teacherSubjects.DELETE("/:id", hm.taxonomyHandler.RemoveSubject)
		}

		// Forum routes
		forum := authed.Group("/forum")
		{
			forum.GET("/topics", hm.forumHandler.ListTopics)
			forum.POST("/topics", hm.forumHandler.CreateTopic)
			forum.GET("/topics/:id", hm.forumHandler.GetTopic)
			forum.DELETE("/topics/:id", hm.forumHandler.DeleteTopic)
			forum.POST("/topics/:id/posts", hm.forumHandler.CreatePost)
		}

		// Assignment routes
		assignments := authed.Group("/assignments")
		{
			assignments.GET("", hm.assignmentHandler.List)
			assignments.GET("/:id", hm.assignmentHandler.Get)
			assignments.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.assignmentHandler.Create)
			assignments.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.assignmentHandler.Delete)

			assignments.GET("/:id/questions", hm.assignmentHandler.ListQuestions)
			assignments.POST("/:id/questions", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.assignmentHandler.AddQuestion)

			assignments.POST("/:id/answers", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.assignmentHandler.SubmitAnswers)
			assignments.GET("/:id/my-results", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.assignmentHandler.MyResults)

			assignments.GET("/:id/results", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.assignmentHandler.Results)
			assignments.GET("/:id/results/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.assignmentHandler.ExportResults)
		}

		// Notification routes
		notifications := authed.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.List)
			notifications.GET("/unread-count", hm.notificationHandler.UnreadCount)
			notifications.PUT("/:id/read", hm.notificationHandler.MarkRead)
			notifications.PUT("/read-all", hm.notificationHandler.MarkAllRead)
			notifications.GET("/settings", hm.notificationHandler.GetSettings)
			notifications.PUT("/settings", hm.notificationHandler.UpdateSettings)
		}

		// Dashboard routes, one per role
		dashboard := authed.Group("/dashboard")
		{
			dashboard.GET("/admin", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.dashboardHandler.AdminStats)
			dashboard.GET("/teacher", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.dashboardHandler.TeacherStats)
			dashboard.GET("/student", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.dashboardHandler.StudentStats)
		}

		// Banner management - Admins only
		banners := authed.Group("/admin/banners")
		banners.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			banners.GET("", hm.bannerHandler.ListAll)
			banners.POST("", hm.bannerHandler.Create)
			banners.PUT("/:id", hm.bannerHandler.Update)
			banners.DELETE("/:id", hm.bannerHandler.Delete)
		}

		authed.POST("/uploads", hm.uploadHandler.Upload)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "community-service",
		})
	})
}
