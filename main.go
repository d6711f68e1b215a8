package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	gameapi "github.com/beka-birhanu/vinom-maze/api/game"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/besttime"
	"github.com/beka-birhanu/vinom-maze/infrastruture/logger"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	bestTimeRepo       i.BestTimeRepo
	gameSessionManager *service.GameSessionManager
	sessionController  api_i.Controller
	jwtTokenizer       i.Tokenizer
	router             *api.Router
	appLogger          *logrus.Entry
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)
	if config.Envs.DBUser == "" {
		uri = fmt.Sprintf("mongodb://%s:%v", config.Envs.DBHost, config.Envs.DBPort)
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Errorf("Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Errorf("MongoDB ping failed: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Errorf("Redis ping failed: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initBestTimeRepo(ctx context.Context) {
	switch config.Envs.BestTimeBackend {
	case "redis":
		initRedis(ctx)
		bestTimeRepo = besttime.NewRedisStore(redisClient, config.Envs.BestTimeKey)
	case "mongo":
		initMongo(ctx)
		bestTimeRepo = besttime.NewMongoStore(mongoClient, config.Envs.DBName, "best_times", config.Envs.BestTimeKey)
	case "file", "":
		bestTimeRepo = besttime.NewFileStore(config.Envs.BestTimeFile)
	default:
		appLogger.Errorf("Unknown best time backend %q", config.Envs.BestTimeBackend)
		os.Exit(1)
	}
	appLogger.WithField("backend", config.Envs.BestTimeBackend).Info("Best time repository initialized")
}

func initSessionManager() {
	width, height, err := maze.DimensionsFor(config.Envs.ScreenWidth, config.Envs.ScreenHeight, config.Envs.CellSize)
	if err != nil {
		appLogger.Errorf("Deriving maze dimensions: %v", err)
		os.Exit(1)
	}

	gameSessionManager, err = service.NewGameSessionManager(&service.Config{
		Store:       bestTimeRepo,
		TickRate:    config.Envs.TickRate,
		Width:       width,
		Height:      height,
		Seed:        config.Envs.MazeSeed,
		IdleTimeout: time.Duration(config.Envs.TokenTTLMinutes) * time.Minute,
		Logger:      logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout),
	})
	if err != nil {
		appLogger.Errorf("Creating session manager: %v", err)
		os.Exit(1)
	}
	appLogger.WithFields(logrus.Fields{"width": width, "height": height}).Info("Session manager initialized")
}

func initJWTTokenizer() {
	if config.Envs.JWTSecret == "" {
		appLogger.Error("JWT_SECRET is not set")
		os.Exit(1)
	}
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initSessionController() {
	var err error
	ttl := time.Duration(config.Envs.TokenTTLMinutes) * time.Minute
	sessionController, err = gameapi.NewSessionController(gameSessionManager, jwtTokenizer, ttl, logger.New("SESSION-API", config.ColorMagenta, os.Stdout))
	if err != nil {
		appLogger.Errorf("Creating session controller: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Session controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{sessionController},
		AuthorizationMiddleware: identity.Authoriz(t),
		Logger:                  logger.New("HTTP", config.ColorBlue, os.Stdout),
	})
	appLogger.Info("Router initialized")
}

func main() {
	appLogger = logger.New("APP", config.ColorGreen, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	initBestTimeRepo(initCtx)
	defer func() {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	initSessionManager()
	defer gameSessionManager.Shutdown()

	initJWTTokenizer()
	initSessionController()
	initRouter(jwtTokenizer)

	server := &http.Server{Addr: router.Addr(), Handler: router.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	appLogger.WithField("addr", router.Addr()).Info("Serving HTTP")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLogger.Errorf("Starting server: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Server stopped")
}
