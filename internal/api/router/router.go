package router

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/instalite/config"
	_ "github.com/d60-Lab/instalite/docs"
	"github.com/d60-Lab/instalite/internal/api/handler"
	"github.com/d60-Lab/instalite/internal/api/middleware"
	"github.com/d60-Lab/instalite/internal/service"
)

// New 组装全部路由与中间件
func New(cfg config.Config, h *handler.Handler, authSvc service.AuthService) *gin.Engine {
	if cfg.Env == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if cfg.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.OTLPEndpoint != "" {
		r.Use(otelgin.Middleware(cfg.AppName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/static/uploads", cfg.UploadDir)
	r.LoadHTMLGlob(cfg.TemplateGlob)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/token", h.Token)
			auth.POST("/logout", h.Logout)
			auth.GET("/me", middleware.Auth(authSvc), h.Me)
		}

		posts := api.Group("/posts", middleware.Auth(authSvc))
		{
			posts.POST("", h.CreatePost)
			posts.GET("", h.ListMyPosts)
			posts.GET("/feed/me", h.Feed)
			posts.GET("/:id", h.GetPost)
			posts.DELETE("/:id", h.DeletePost)
		}

		comments := api.Group("/comments", middleware.Auth(authSvc))
		{
			comments.GET("/post/:post_id", h.ListComments)
			comments.POST("/post/:post_id", h.AddComment)
			comments.DELETE("/:comment_id", h.DeleteComment)
		}

		likes := api.Group("/likes", middleware.Auth(authSvc))
		{
			likes.POST("/post/:post_id", h.Like)
			likes.POST("/post/:post_id/unlike", h.Unlike)
		}

		users := api.Group("/users")
		{
			users.GET("/:username", middleware.AuthOptional(authSvc), h.GetProfile)
			users.POST("/:username/follow", middleware.Auth(authSvc), h.Follow)
			users.POST("/:username/unfollow", middleware.Auth(authSvc), h.Unfollow)
		}

		admin := api.Group("/admin", middleware.Auth(authSvc), middleware.AdminOnly())
		{
			admin.GET("/users", h.AdminListUsers)
			admin.GET("/posts", h.AdminListPosts)
			admin.DELETE("/users/:id", h.AdminDeleteUser)
		}
	}

	// 服务端渲染页面，统一可选鉴权
	pages := r.Group("/", middleware.AuthOptional(authSvc))
	{
		pages.GET("/", h.HomePage)
		pages.GET("/about", h.AboutPage)
		pages.GET("/app", h.FeedPage)
		pages.GET("/profile/:username", h.ProfilePage)
		pages.GET("/login", h.LoginPage)
		pages.POST("/login", h.LoginSubmit)
		pages.GET("/register", h.RegisterPage)
		pages.POST("/register", h.RegisterSubmit)
		pages.POST("/logout", h.LogoutAction)

		actions := pages.Group("/actions")
		{
			actions.POST("/post", h.PostAction)
			actions.POST("/like/:post_id", h.LikeAction)
			actions.POST("/unlike/:post_id", h.UnlikeAction)
			actions.POST("/comment/:post_id", h.CommentAction)
			actions.POST("/follow/:username", h.FollowAction)
			actions.POST("/unfollow/:username", h.UnfollowAction)
		}
	}

	return r
}
