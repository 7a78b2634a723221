package handler

import (
	"net/http"
	"time"

	"fu-news-go/internal/live"
	"fu-news-go/internal/middleware"
	"fu-news-go/internal/policy"
	"fu-news-go/internal/repository"
	"fu-news-go/internal/response"
	"fu-news-go/internal/service"
	"fu-news-go/pkg/metrics"
	"fu-news-go/pkg/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services 汇总路由需要的全部业务服务。
type Services struct {
	Auth     service.AuthService
	Accounts service.AccountService
	Category service.CategoryService
	Tags     service.TagService
	News     service.NewsService
	Reports  service.ReportService
	Search   service.SearchService
	Media    service.MediaService
}

// RouterConfig 是创建路由所需的依赖。
type RouterConfig struct {
	Services     Services
	JWTManager   *token.JWTManager
	Blacklist    repository.TokenBlacklist
	Hub          *live.Hub
	AllowOrigins []string
}

// NewRouter 注册所有路由。每个路由都通过 policy 表声明访问规则。
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger(), middleware.Metrics())
	if len(cfg.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.MsgNotFound)
	})

	guard := func(op policy.Operation) gin.HandlerFunc {
		return middleware.Authorize(op, cfg.JWTManager, cfg.Blacklist)
	}
	s := cfg.Services
	api := r.Group("/api")

	auth := NewAuthHandler(s.Auth)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", guard(policy.AuthLogin), auth.Login)
		authGroup.POST("/logout", guard(policy.AuthLogout), auth.Logout)
	}

	accounts := NewAccountHandler(s.Accounts)
	accountGroup := api.Group("/accounts")
	{
		accountGroup.GET("", guard(policy.AccountList), accounts.List)
		accountGroup.GET("/search", guard(policy.AccountSearch), accounts.Search)
		accountGroup.GET("/count", guard(policy.AccountCount), accounts.Count)
		accountGroup.GET("/profile", guard(policy.AccountProfileGet), accounts.Profile)
		accountGroup.PUT("/profile", guard(policy.AccountProfileUpdate), accounts.UpdateProfile)
		accountGroup.GET("/:id", guard(policy.AccountGet), accounts.GetByID)
		accountGroup.POST("", guard(policy.AccountCreate), accounts.Create)
		accountGroup.PUT("/:id", guard(policy.AccountUpdate), accounts.Update)
		accountGroup.DELETE("/:id", guard(policy.AccountDelete), accounts.Delete)
	}

	categories := NewCategoryHandler(s.Category)
	categoryGroup := api.Group("/categories")
	{
		categoryGroup.GET("", guard(policy.CategoryList), categories.List)
		categoryGroup.GET("/active", guard(policy.CategoryActive), categories.Active)
		categoryGroup.GET("/search", guard(policy.CategorySearch), categories.Search)
		categoryGroup.GET("/count", guard(policy.CategoryCount), categories.Count)
		categoryGroup.GET("/:id", guard(policy.CategoryGet), categories.GetByID)
		categoryGroup.POST("", guard(policy.CategoryCreate), categories.Create)
		categoryGroup.PUT("/:id", guard(policy.CategoryUpdate), categories.Update)
		categoryGroup.DELETE("/:id", guard(policy.CategoryDelete), categories.Delete)
	}

	tags := NewTagHandler(s.Tags)
	tagGroup := api.Group("/tags")
	{
		tagGroup.GET("", guard(policy.TagList), tags.List)
		tagGroup.GET("/count", guard(policy.TagCount), tags.Count)
		tagGroup.GET("/:id", guard(policy.TagGet), tags.GetByID)
		tagGroup.POST("", guard(policy.TagCreate), tags.Create)
		tagGroup.PUT("/:id", guard(policy.TagUpdate), tags.Update)
		tagGroup.DELETE("/:id", guard(policy.TagDelete), tags.Delete)
	}

	news := NewNewsHandler(s.News)
	search := NewSearchHandler(s.Search)
	newsGroup := api.Group("/news")
	{
		newsGroup.GET("/active", guard(policy.NewsActive), news.Active)
		newsGroup.GET("/active/:id", guard(policy.NewsActiveGet), news.ActiveByID)
		newsGroup.GET("/fulltext", guard(policy.NewsFullText), search.FullText)
		if cfg.Hub != nil {
			newsGroup.GET("/live", guard(policy.NewsLive), NewLiveHandler(cfg.Hub).Handle)
		}
		newsGroup.GET("", guard(policy.NewsList), news.List)
		newsGroup.GET("/search", guard(policy.NewsSearch), news.Search)
		newsGroup.GET("/my-news", guard(policy.NewsMine), news.Mine)
		newsGroup.GET("/statistics", guard(policy.NewsStatistics), news.Statistics)
		newsGroup.GET("/counts", guard(policy.NewsCounts), news.Counts)
		newsGroup.GET("/:id", guard(policy.NewsGet), news.GetByID)
		newsGroup.POST("", guard(policy.NewsCreate), news.Create)
		newsGroup.PUT("/:id", guard(policy.NewsUpdate), news.Update)
		newsGroup.DELETE("/:id", guard(policy.NewsDelete), news.Delete)
	}

	reports := NewReportHandler(s.Reports)
	reportGroup := api.Group("/reports")
	{
		reportGroup.GET("/statistics", guard(policy.ReportStatistics), reports.Statistics)
		reportGroup.GET("/counts", guard(policy.ReportCounts), reports.Counts)
		reportGroup.GET("/all-news", guard(policy.ReportAllNews), reports.AllNews)
		reportGroup.GET("/all-categories", guard(policy.ReportAllCategories), reports.AllCategories)
		reportGroup.GET("/all-tags", guard(policy.ReportAllTags), reports.AllTags)
		reportGroup.GET("/all-accounts", guard(policy.ReportAllAccounts), reports.AllAccounts)
	}

	media := NewMediaHandler(s.Media)
	mediaGroup := api.Group("/media")
	{
		mediaGroup.POST("/images", guard(policy.MediaUpload), media.Upload)
		mediaGroup.GET("/images/:name", guard(policy.MediaGet), media.Get)
	}

	return r
}
