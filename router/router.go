// Package router 在启动时构建显式路由表并挂载到 gin。
package router

import (
	"net/http"

	"seriesapi/controllers"
	"seriesapi/middleware"
	"seriesapi/models"
	"seriesapi/repository"
	"seriesapi/services/activity"
	"seriesapi/services/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Access 路由的访问级别
type Access int

const (
	Public        Access = iota // 无需登录
	Authenticated               // 需要有效令牌
	Admin                       // 需要管理员令牌
)

// Route 路由表中的一项
type Route struct {
	Method  string
	Path    string
	Access  Access
	Handler gin.HandlerFunc
}

// Deps 构建路由所需的依赖
type Deps struct {
	DB       *gorm.DB
	Repos    *repository.Repositories
	Tokens   *auth.TokenService
	Activity *activity.ActivityService
}

// resource 生成标准 CRUD 路由：读操作公开，写操作需要登录
func resource(prefix string, list, create, retrieve, update, partialUpdate, destroy gin.HandlerFunc) []Route {
	detail := prefix + ":id/"
	return []Route{
		{http.MethodGet, prefix, Public, list},
		{http.MethodPost, prefix, Authenticated, create},
		{http.MethodGet, detail, Public, retrieve},
		{http.MethodPut, detail, Authenticated, update},
		{http.MethodPatch, detail, Authenticated, partialUpdate},
		{http.MethodDelete, detail, Authenticated, destroy},
	}
}

// Routes 返回 /api/v1 下的完整路由表
func Routes(d Deps) []Route {
	platforms := controllers.NewPlatformController(d.Repos.Platforms, d.Repos.Series)
	genders := controllers.NewGenderController(d.Repos.Genders, d.Repos.Series)
	series := controllers.NewSerieController(d.Repos)
	seasons := controllers.NewSeasonController(d.Repos)
	episodes := controllers.NewEpisodeController(d.Repos.Episodes, d.Repos.Seasons)

	authController := controllers.NewAuthController(d.DB, d.Tokens, d.Activity)
	activityController := controllers.NewActivityController(d.Activity)
	systemController := controllers.NewSystemController(d.DB)
	logController := controllers.NewLogController(d.Tokens)

	var routes []Route

	routes = append(routes, resource("/platforms/",
		platforms.List, platforms.Create, platforms.Retrieve,
		platforms.Update, platforms.PartialUpdate, platforms.Delete)...)
	routes = append(routes, Route{http.MethodGet, "/platforms/:id/series_list/", Public, platforms.SeriesList})

	routes = append(routes, resource("/genders/",
		genders.List, genders.Create, genders.Retrieve,
		genders.Update, genders.PartialUpdate, genders.Delete)...)
	routes = append(routes, Route{http.MethodGet, "/genders/:id/series_list/", Public, genders.SeriesList})

	routes = append(routes, resource("/series/",
		series.List, series.Create, series.Retrieve,
		series.Update, series.PartialUpdate, series.Delete)...)
	routes = append(routes,
		Route{http.MethodGet, "/series/search/", Public, series.Search},
		Route{http.MethodGet, "/series/:id/seasons_list/", Public, series.SeasonsList},
		Route{http.MethodGet, "/series/:id/episodes_list/", Public, series.EpisodesList},
	)

	routes = append(routes, resource("/episodes/",
		episodes.List, episodes.Create, episodes.Retrieve,
		episodes.Update, episodes.PartialUpdate, episodes.Delete)...)

	routes = append(routes, resource("/seasons/",
		seasons.List, seasons.Create, seasons.Retrieve,
		seasons.Update, seasons.PartialUpdate, seasons.Delete)...)
	routes = append(routes, Route{http.MethodGet, "/seasons/:id/episodes_list/", Public, seasons.EpisodesList})

	routes = append(routes,
		Route{http.MethodPost, "/register", Public, authController.Register},
		Route{http.MethodPost, "/login", Public, authController.Login},
		Route{http.MethodGet, "/user/info", Authenticated, authController.GetUserInfo},

		Route{http.MethodGet, "/admin/stats", Admin, systemController.GetSystemStats},
		Route{http.MethodGet, "/admin/system/status", Admin, systemController.GetSystemStatus},
		Route{http.MethodGet, "/admin/logs", Admin, logController.GetLogs},
		Route{http.MethodGet, "/admin/activities", Admin, activityController.GetRecentActivities},
		// WebSocket 在连接内部校验令牌，不挂认证中间件
		Route{http.MethodGet, "/admin/logs/watch", Public, logController.WatchLogs},
	)

	return routes
}

// Setup 创建 gin 引擎并注册全部路由
func Setup(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authRequired := middleware.AuthMiddleware(d.Tokens)
	adminRequired := middleware.RequireRoles(models.RoleAdmin)

	v1 := r.Group("/api/v1")
	for _, route := range Routes(d) {
		var handlers []gin.HandlerFunc
		switch route.Access {
		case Authenticated:
			handlers = append(handlers, authRequired)
		case Admin:
			handlers = append(handlers, authRequired, adminRequired)
		}
		handlers = append(handlers, route.Handler)
		v1.Handle(route.Method, route.Path, handlers...)
	}
	return r
}
