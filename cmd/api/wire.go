//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 运行 `wire gen ./cmd/api` 生成wire_gen.go。
// 注入链与main.go中的手动组装保持一致。

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// infrastructureSet 基础设施层
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewTxManager,
	wire.Bind(new(book.TxRunner), new(*mysql.TxManager)),
)

// domainSet 领域层
var domainSet = wire.NewSet(
	user.NewService,
	user.NewMutationGate,
	wire.Bind(new(book.Gate), new(*user.MutationGate)),
	book.NewService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
)

// middlewareSet JWT管理器、会话与缓存、认证中间件
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideBookCache,
	provideEventPublisher,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideBookCache 从Redis客户端创建图书缓存
func provideBookCache(client *goredis.Client) *redis.BookCache {
	return redis.NewBookCache(client)
}

// provideEventPublisher 按配置创建事件发布者,未启用MQ时返回nil
func provideEventPublisher(cfg *config.Config) (appbook.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	metrics.InitMetrics()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing("bookcatalog"))
	}

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/:bookId", bookHandler.GetBook)
			books.POST("", authMiddleware.RequireAuth(), bookHandler.CreateBook)
			books.PATCH("/:bookId", authMiddleware.RequireAuth(), bookHandler.UpdateBook)
			books.DELETE("/:bookId", authMiddleware.RequireAuth(), bookHandler.DeleteBook)
		}
	}

	return r
}

// InitializeApp 初始化整个应用
// Wire在编译期按Provider依赖关系生成wire_gen.go
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
