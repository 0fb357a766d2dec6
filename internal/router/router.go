package router

import (
	"ansxtra/internal/handler"
	"ansxtra/internal/middleware"
	"ansxtra/internal/repository"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Auth     *handler.AuthHandler
	Club     *handler.ClubHandler
	App      *handler.ApplicationHandler
	Sessions *repository.SessionRepository
}

func InitRouter(d Deps) *gin.Engine {
	r := gin.Default()

	authRequired := middleware.AuthMiddleware(d.Sessions)

	// 登录相关接口
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/login", d.Auth.Login)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", d.Auth.TokenRefresh)
	}

	// 登录态接口
	sessionGroup := r.Group("/api/auth")
	sessionGroup.Use(authRequired)
	{
		sessionGroup.POST("/logout", d.Auth.Logout)
		sessionGroup.GET("/session", d.Auth.Session)
	}

	// 社团目录接口，公开只读
	clubGroup := r.Group("/api/club")
	{
		clubGroup.GET("/list", d.Club.List)
		clubGroup.GET("/tags", d.Club.Tags)
		clubGroup.GET("/:slug", d.Club.Detail)
	}

	// 申请相关接口
	appGroup := r.Group("/api/application")
	appGroup.Use(authRequired)
	{
		appGroup.POST("/submit", d.App.Submit)
		appGroup.GET("/list", d.App.List)
		appGroup.GET("/existing", d.App.Existing)
		appGroup.POST("/:id/advance", d.App.Advance)
		appGroup.DELETE("/:id", d.App.Withdraw)
	}

	// 成员关系接口
	membershipGroup := r.Group("/api/membership")
	membershipGroup.Use(authRequired)
	{
		membershipGroup.GET("/list", d.Club.Memberships)
	}

	// 干部/顾问管理视图
	leaderGroup := r.Group("/api/leader")
	leaderGroup.Use(authRequired)
	{
		leaderGroup.GET("/clubs/:slug/applications", d.App.ListByClub)
		leaderGroup.POST("/applications/:id/status", d.App.SetStatus)
	}

	return r
}
