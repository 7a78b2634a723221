// Package main 是应用程序的入口点。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fu-news-go/internal/config"
	"fu-news-go/internal/handler"
	"fu-news-go/internal/live"
	"fu-news-go/internal/pipeline"
	"fu-news-go/internal/repository"
	"fu-news-go/internal/service"
	"fu-news-go/pkg/database"
	"fu-news-go/pkg/es"
	"fu-news-go/pkg/events"
	"fu-news-go/pkg/kafka"
	"fu-news-go/pkg/log"
	"fu-news-go/pkg/storage"
	"fu-news-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 1. 初始化配置
	config.Init(*configPath)
	cfg := config.Conf

	// 2. 初始化日志记录器
	if err := log.Init(cfg.Log); err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("日志记录器初始化成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. 初始化数据库和 Redis
	db, err := database.InitMySQL(cfg.Database.MySQL.DSN, cfg.Database.MySQL.AutoMigrate)
	if err != nil {
		log.Fatal("MySQL 初始化失败", err)
	}

	blacklist := repository.NewNoopTokenBlacklist()
	if cfg.Database.Redis.Addr != "" {
		rdb, err := database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
		if err != nil {
			log.Warnf("Redis 连接失败，注销的 token 将不会被撤销: %v", err)
		} else {
			blacklist = repository.NewTokenBlacklist(rdb)
			defer rdb.Close()
		}
	}

	// 4. 可选的外部组件。未启用时保持接口为 nil。
	var (
		searcher     service.ArticleSearcher
		articleIndex pipeline.ArticleIndex
		objects      service.ObjectStore
	)
	if cfg.Elasticsearch.Enabled {
		client, err := es.NewClient(cfg.Elasticsearch)
		if err != nil {
			log.Fatal("Elasticsearch 初始化失败", err)
		}
		index := es.NewArticleIndex(client, cfg.Elasticsearch.IndexName)
		if err := index.EnsureIndex(ctx); err != nil {
			log.Fatal("创建文章索引失败", err)
		}
		searcher, articleIndex = index, index
	}
	if cfg.MinIO.Enabled {
		client, err := storage.NewMinIOClient(cfg.MinIO)
		if err != nil {
			log.Fatal("MinIO 初始化失败", err)
		}
		store := storage.NewObjectStore(client, cfg.MinIO.BucketName)
		if err := store.EnsureBucket(ctx); err != nil {
			log.Fatal("创建存储桶失败", err)
		}
		objects = store
	}

	// 5. 初始化 Service (依赖注入)
	admin, err := service.NewBootstrapAdmin(cfg.BootstrapAdmin)
	if err != nil {
		log.Fatal("内置管理员配置无效", err)
	}
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.ExpireMinutes)
	uow := repository.NewUnitOfWork(db)
	hub := live.NewHub()

	var indexer *pipeline.Indexer
	var publisher events.Publisher
	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka)
		publisher = producer
	} else {
		// indexer 依赖 newsService，这里延迟取值
		publisher = events.PublisherFunc(func(ctx context.Context, event events.ArticleEvent) error {
			return indexer.Handle(ctx, event)
		})
	}

	accountService := service.NewAccountService(uow, admin)
	categoryService := service.NewCategoryService(uow)
	tagService := service.NewTagService(uow)
	newsService := service.NewNewsService(uow, publisher)
	services := handler.Services{
		Auth:     service.NewAuthService(uow, admin, jwtManager, blacklist),
		Accounts: accountService,
		Category: categoryService,
		Tags:     tagService,
		News:     newsService,
		Reports:  service.NewReportService(newsService, accountService, categoryService, tagService),
		Search:   service.NewSearchService(searcher),
		Media:    service.NewMediaService(objects, cfg.Media.MaxUploadMB),
	}

	// 6. 初始化文章索引管道
	indexer = pipeline.NewIndexer(newsService, articleIndex, hub)
	if cfg.Kafka.Enabled {
		go kafka.StartConsumer(ctx, cfg.Kafka, indexer)
	}

	// 7. 设置 Gin 模式并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := handler.NewRouter(handler.RouterConfig{
		Services:     services,
		JWTManager:   jwtManager,
		Blacklist:    blacklist,
		Hub:          hub,
		AllowOrigins: cfg.CORS.AllowOrigins,
	})

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP 服务监听失败: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP 服务器关闭失败: %v", err)
	}
	// 停止 Kafka 消费者并断开所有实时订阅
	cancel()
	hub.Close()
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Errorf("关闭 Kafka 生产者失败: %v", err)
		}
	}
	log.Info("服务已优雅关闭")
}
