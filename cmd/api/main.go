package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/bookcatalog/docs" // swagger文档注册
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
	"github.com/xiebiao/bookcatalog/pkg/tracing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title           Book Catalog API
// @version         1.0
// @description     图书目录查询与受控写入服务
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

// main 主程序入口(手动依赖注入,与cmd/api/wire.go的注入器等价)
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 可观测性
	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("bookcatalog", cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			log.Fatalf("初始化追踪失败: %v", err)
		}
		defer shutdown(context.Background())
	}

	// 3. 存储连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 消息队列(可选,未部署broker时关闭)
	var publisher appbook.EventPublisher
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	// 5. 依赖注入: Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	bookCache := redis.NewBookCache(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	mutationGate := user.NewMutationGate(userRepo)
	bookService := book.NewService(bookRepo, mutationGate, txManager)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, bookCache)
	createBookUseCase := appbook.NewCreateBookUseCase(bookService, publisher)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService, bookCache, publisher)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService, bookCache, publisher)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	bookHandler := handler.NewBookHandler(
		listBooksUseCase, getBookUseCase, createBookUseCase,
		updateBookUseCase, deleteBookUseCase,
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. Gin引擎与路由
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing("bookcatalog"))
	}

	registerRoutes(r, userHandler, bookHandler, authMiddleware)

	// 7. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   图书列表: GET  http://localhost%s/api/v1/books\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   指标:     http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
// 写操作挂RequireAuth只拦截"没带合法Token"的请求;
// admin角色校验在领域层授权门中按数据库角色判定
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档(生产环境建议关闭或加访问控制)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 图书模块
		books := v1.Group("/books")
		{
			// 读操作公开
			books.GET("", bookHandler.ListBooks)
			books.GET("/:bookId", bookHandler.GetBook)

			// 写操作需要登录
			books.POST("", authMiddleware.RequireAuth(), bookHandler.CreateBook)
			books.PATCH("/:bookId", authMiddleware.RequireAuth(), bookHandler.UpdateBook)
			books.DELETE("/:bookId", authMiddleware.RequireAuth(), bookHandler.DeleteBook)
		}
	}
}
