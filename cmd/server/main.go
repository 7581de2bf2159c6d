package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bitfantasy/nimo-mes/internal/config"
	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/handler"
	"github.com/bitfantasy/nimo-mes/internal/middleware"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting nimo-mes service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(entity.All()...); err != nil {
		zapLogger.Fatal("AutoMigrate failed", zap.Error(err))
	}

	// Redis 可选，仅用于发布操作日志事件
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = initRedis(cfg.Redis)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zapLogger.Warn("Redis unreachable, activity events disabled", zap.Error(err))
			rdb.Close()
			rdb = nil
		}
	}

	handlers := handler.NewHandlers(cfg, zapLogger, db, rdb)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, db, zapLogger)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, db *gorm.DB, zapLogger *zap.Logger) {
	// 健康检查
	r.GET("/healthz", h.Health.Healthz)
	r.GET("/readyz", h.Health.Readyz)

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": Version, "build_time": BuildTime})
	})

	// 业务接口共享请求级事务
	v1 := r.Group("/api/v1")
	v1.Use(middleware.UnitOfWork(db, zapLogger))
	{
		departments := v1.Group("/departments")
		{
			departments.GET("", h.Org.ListDepartments)
			departments.GET("/search", h.Org.GetDepartmentByTitle)
			departments.GET("/:id", h.Org.GetDepartment)
			departments.POST("", h.Org.CreateDepartment)
			departments.PUT("/:id", h.Org.UpdateDepartment)
			departments.DELETE("/:id", h.Org.DeleteDepartment)
		}

		users := v1.Group("/users")
		{
			users.GET("", h.Org.ListUsers)
			users.GET("/search", h.Org.GetUserByUsername)
			users.GET("/:id", h.Org.GetUser)
			users.POST("", h.Org.CreateUser)
			users.PUT("/:id", h.Org.UpdateUser)
			users.DELETE("/:id", h.Org.DeleteUser)
		}

		parts := v1.Group("/parts")
		{
			parts.GET("", h.Part.ListParts)
			parts.GET("/:id", h.Part.GetPart)
			parts.POST("", h.Part.CreatePart)
			parts.PUT("/:id", h.Part.UpdatePart)
			parts.DELETE("/:id", h.Part.DeletePart)
		}

		defectCategories := v1.Group("/defect-categories")
		{
			defectCategories.GET("", h.Part.ListDefectCategories)
			defectCategories.GET("/:id", h.Part.GetDefectCategory)
			defectCategories.POST("", h.Part.CreateDefectCategory)
			defectCategories.PUT("/:id", h.Part.UpdateDefectCategory)
			defectCategories.DELETE("/:id", h.Part.DeleteDefectCategory)
		}

		defects := v1.Group("/defects")
		{
			defects.GET("", h.Part.ListDefects)
			defects.GET("/find", h.Part.FindDefect)
			defects.GET("/:id", h.Part.GetDefect)
			defects.POST("", h.Part.CreateDefect)
			defects.PUT("/:id", h.Part.UpdateDefect)
			defects.DELETE("/:id", h.Part.DeleteDefect)
		}

		qualities := v1.Group("/qualities")
		{
			qualities.GET("", h.Part.ListQualities)
			qualities.GET("/find", h.Part.FindQuality)
			qualities.GET("/:id", h.Part.GetQuality)
			qualities.POST("", h.Part.CreateQuality)
			qualities.PUT("/:id", h.Part.UpdateQuality)
			qualities.DELETE("/:id", h.Part.DeleteQuality)
		}

		workCenters := v1.Group("/work-centers")
		{
			workCenters.GET("", h.Production.ListWorkCenters)
			workCenters.GET("/:id", h.Production.GetWorkCenter)
			workCenters.POST("", h.Production.CreateWorkCenter)
		}

		workOrders := v1.Group("/work-orders")
		{
			workOrders.GET("", h.Production.ListWorkOrders)
			workOrders.GET("/search", h.Production.GetWorkOrderByNumber)
			workOrders.GET("/export", h.Production.ExportWorkOrders)
			workOrders.GET("/:id", h.Production.GetWorkOrder)
			workOrders.GET("/:id/ops", h.Production.ListWorkOrderOps)
			workOrders.POST("", h.Production.CreateWorkOrder)
		}

		workOrderOps := v1.Group("/work-order-ops")
		{
			workOrderOps.GET("", h.Production.ListAllWorkOrderOps)
			workOrderOps.POST("", h.Production.CreateWorkOrderOp)
		}

		routings := v1.Group("/routings")
		{
			routings.GET("", h.Production.ListRoutings)
			routings.GET("/:id", h.Production.GetRouting)
			routings.GET("/:id/steps", h.Production.ListRoutingSteps)
			routings.POST("", h.Production.CreateRouting)
		}

		routingSteps := v1.Group("/routing-steps")
		{
			routingSteps.POST("", h.Production.CreateRoutingStep)
		}

		boms := v1.Group("/boms")
		{
			boms.GET("", h.Production.ListBOMs)
			boms.GET("/:id", h.Production.GetBOM)
			boms.GET("/:id/items", h.Production.ListBOMItems)
			boms.GET("/:id/export", h.Production.ExportBOM)
			boms.POST("", h.Production.CreateBOM)
		}

		bomItems := v1.Group("/bom-items")
		{
			bomItems.POST("", h.Production.CreateBOMItem)
		}

		activityLogs := v1.Group("/activity-logs")
		{
			activityLogs.GET("", h.Activity.ListActivityLogs)
			activityLogs.POST("", h.Activity.CreateActivityLog)
		}

		floors := v1.Group("/floors")
		{
			floors.GET("", h.Floor.ListFloors)
			floors.GET("/:id", h.Floor.GetFloor)
			floors.GET("/:id/zones", h.Floor.ListFloorZonesByFloor)
			floors.POST("", h.Floor.CreateFloor)
			floors.PUT("/:id", h.Floor.UpdateFloor)
			floors.DELETE("/:id", h.Floor.DeleteFloor)
		}

		floorZones := v1.Group("/floor-zones")
		{
			floorZones.GET("", h.Floor.ListFloorZones)
			floorZones.GET("/:id", h.Floor.GetFloorZone)
			floorZones.POST("", h.Floor.CreateFloorZone)
			floorZones.PUT("/:id", h.Floor.UpdateFloorZone)
			floorZones.DELETE("/:id", h.Floor.DeleteFloorZone)
		}
	}
}
