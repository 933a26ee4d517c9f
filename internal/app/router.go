package app

import (
	"poker_school_backend/docs"
	"poker_school_backend/internal/middleware"
	"poker_school_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes is the closed route table: every exposed operation is listed
// here, nothing is dispatched by name.
func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)

		public.GET("/courses", c.catalog.GetCourses)
		public.GET("/courses/:id", c.catalog.GetCourse)
		public.GET("/courses/:id/chapters", c.catalog.GetCourseChapters)
		public.GET("/free-videos", c.catalog.GetFreeVideos)
		public.GET("/free-quizzes", c.catalog.GetFreeQuizzes)
		public.GET("/free-quizzes/:id", c.catalog.GetFreeQuiz)

		public.GET("/banners", c.content.GetBanners)
		public.GET("/feeds", c.content.GetFeeds)
		public.GET("/live-streams", c.content.GetLiveStreams)
		public.GET("/popup", c.content.GetPopup)
		public.GET("/home", c.content.GetHome)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(s.identity))
	{
		authGroup.POST("/progress", c.progress.PostProgress)
		authGroup.GET("/progress", c.progress.GetAllProgress)
		authGroup.GET("/progress/course/:id", c.progress.GetCourseProgress)
		authGroup.GET("/progress/chapter/:id", c.progress.GetChapterProgress)
		authGroup.GET("/progress/component/:id", c.progress.GetComponentProgress)
		authGroup.GET("/my-learning", c.progress.GetMyLearning)
		authGroup.GET("/incomplete-courses", c.progress.GetIncompleteCourses)
		authGroup.POST("/feedback", c.progress.PostFeedback)
		authGroup.GET("/feedback/:id", c.progress.GetFeedback)

		authGroup.GET("/badges", c.badge.GetDetails)
		authGroup.GET("/badges/header", c.badge.GetHeader)
		authGroup.GET("/badges/welcome", c.badge.GetWelcomeBadges)
		authGroup.GET("/streaks/:no", c.badge.GetStreakDetail)

		authGroup.POST("/bookmarks", c.engagement.ToggleBookmark)
		authGroup.GET("/bookmarks/videos", c.engagement.GetBookmarkedVideos)
		authGroup.GET("/bookmarks/chapters", c.engagement.GetBookmarkedChapters)
		authGroup.GET("/bookmarks/quizzes", c.engagement.GetBookmarkedQuizzes)
		authGroup.POST("/last-seen", c.engagement.PostLastSeen)
		authGroup.GET("/last-seen", c.engagement.GetLastSeen)

		authGroup.GET("/recommendations", c.recommend.GetRecommendation)
	}

	internal := router.Group("/api/internal")
	{
		internal.POST("/catalog-sync", c.sync.PostCatalogSync)
	}
}
