// Command detectsvc runs the language-detection HTTP service: gin
// routes backed by detectsvc.Service, a hybrid Redis/MongoDB result
// cache, a Mongo-backed review queue searchable through Meilisearch,
// and learned prior overrides.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/caiatext/langident/app/controllers"
	"github.com/caiatext/langident/app/services/cache"
	"github.com/caiatext/langident/app/services/detectsvc"
	"github.com/caiatext/langident/app/services/priors"
	"github.com/caiatext/langident/app/services/review"
	"github.com/caiatext/langident/internal/config"
	"github.com/caiatext/langident/internal/profile"
	"github.com/caiatext/langident/internal/reviewindex"
	"github.com/caiatext/langident/routes"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	loadInfraConfig()

	configPath := getEnv("LANGIDENT_CONFIG", "config/langident.yaml")
	if err := config.Load(configPath); err != nil {
		log.Fatalf("failed to load detection config: %v", err)
	}

	logger := initLogger()
	defer logger.Sync()

	logger.Info("starting langident detection service")

	idx, profileVersion, err := profile.LoadIndexFromFile(config.C.ProfilePath)
	if err != nil {
		logger.Fatal("failed to load language profiles", zap.Error(err))
	}
	logger.Info("loaded profile set", zap.String("version", profileVersion), zap.Int("languages", idx.LangCount()))

	mongoDB := initMongoDB(logger)
	defer func() {
		if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
			logger.Error("error disconnecting mongodb", zap.Error(err))
		}
	}()

	ttl := time.Duration(config.C.Cache.TTLHours) * time.Hour
	redisCache, err := cache.NewRedisCache(getEnv("REDIS_URL", "redis://localhost:6379"), ttl, logger)
	if err != nil {
		logger.Fatal("failed to initialize redis cache", zap.Error(err))
	}
	mongoCache, err := cache.NewMongoCache(mongoDB, config.C.Cache.LRUSize, logger)
	if err != nil {
		logger.Fatal("failed to initialize mongo cache", zap.Error(err))
	}
	hybridCache := cache.NewHybridCache(redisCache, mongoCache, logger)

	if err := mongoCache.WarmUp(context.Background(), config.C.Cache.LRUSize/2); err != nil {
		logger.Warn("failed to warm up cache", zap.Error(err))
	}

	reviewIndex, err := reviewindex.New(
		viper.GetString("meilisearch.url"),
		viper.GetString("meilisearch.master_key"),
		config.C.Meili.IndexName,
		logger,
	)
	if err != nil {
		logger.Fatal("failed to initialize meilisearch", zap.Error(err))
	}
	if err := reviewIndex.Configure(); err != nil {
		logger.Warn("failed to configure review index", zap.Error(err))
	}

	reviewService, err := review.NewService(mongoDB, reviewIndex, logger)
	if err != nil {
		logger.Fatal("failed to initialize review service", zap.Error(err))
	}
	priorsService, err := priors.NewService(mongoDB, logger)
	if err != nil {
		logger.Fatal("failed to initialize priors service", zap.Error(err))
	}

	service := detectsvc.New(idx, profileVersion, detectsvc.Options{
		Cache:         hybridCache,
		Priors:        priorsService,
		Review:        reviewService,
		Logger:        logger,
		ReviewGap:     config.C.Thresholds.ReviewGap,
		MaxTextLength: config.C.Detection.MaxTextLength,
	})

	detectController := controllers.NewDetectController(service, logger)
	adminController := controllers.NewAdminController(reviewService, priorsService, logger)

	router := gin.New()
	routes.SetupAllRoutes(router, detectController, adminController)

	port := getEnv("APP_PORT", "8080")
	logger.Info("langident service listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func loadInfraConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("meilisearch.url", "http://meili:7700")
	viper.SetDefault("mongo.url", "mongodb://localhost:27017/langident")
	viper.SetDefault("cache.l1_size", 10000)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("warning: cannot read infra config file: %v", err)
	}
}

func initLogger() *zap.Logger {
	env := getEnv("APP_ENV", "development")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("cannot initialize logger:", err)
	}
	return logger
}

func initMongoDB(logger *zap.Logger) *mongo.Database {
	mongoURL := getEnv("MONGO_URL", viper.GetString("mongo.url"))

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("failed to ping mongodb", zap.Error(err))
	}

	db := client.Database("langident")
	logger.Info("connected to mongodb")
	return db
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

