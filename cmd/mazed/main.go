// Command mazed serves maze generation over HTTP, with an optional Redis cache
// for seeded mazes and an optional MongoDB archive guarded by JWT auth.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/amazeing/api"
	api_i "github.com/beka-birhanu/amazeing/api/i"
	"github.com/beka-birhanu/amazeing/api/identity"
	mazeapi "github.com/beka-birhanu/amazeing/api/maze"
	"github.com/beka-birhanu/amazeing/config"
	"github.com/beka-birhanu/amazeing/encoder"
	"github.com/beka-birhanu/amazeing/infrastruture/cache"
	"github.com/beka-birhanu/amazeing/infrastruture/repo"
	"github.com/beka-birhanu/amazeing/infrastruture/token"
	"github.com/beka-birhanu/amazeing/logger"
	"github.com/beka-birhanu/amazeing/service"
	"github.com/beka-birhanu/amazeing/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	envs           config.Config
	redisClient    *redis.Client
	mongoClient    *mongo.Client
	mazeCache      i.MazeCache
	mazeRepo       i.MazeRepo
	userRepo       i.UserRepo
	hexEncoder     i.Encoder
	mazeService    i.MazeService
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	mazeController api_i.Controller
	authController api_i.Controller
	router         *api.Router
	appLogger      *logger.Logger
)

func initRedis(ctx context.Context) {
	if envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, seeded mazes will not be cached")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     envs.RedisAddr,
		Password: envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}

	var err error
	mazeCache, err = cache.NewRedisMazeCache(redisClient, envs.CacheTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initMongo(ctx context.Context) {
	if envs.DBHost == "" {
		appLogger.Warning("DB_HOST not set, archive and auth routes are disabled")
		return
	}

	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", envs.DBUser, envs.DBPassword, envs.DBHost, envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRepos(ctx context.Context) {
	if mongoClient == nil {
		return
	}

	mazeRepo = repo.NewMazeRepo(mongoClient, envs.DBName, "mazes")

	var err error
	userRepo, err = repo.NewUserRepo(ctx, mongoClient, envs.DBName, "users")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating user repository: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Repositories initialized")
}

func initMazeService() {
	serviceLogger, err := logger.New("MAZE-SERVICE", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service logger: %v", err))
		os.Exit(1)
	}

	hexEncoder = encoder.NewHex()
	mazeService, err = service.NewMazeService(mazeCache, mazeRepo, hexEncoder, serviceLogger, &service.Options{
		MaxDimension: envs.MaxDimension,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initMazeController() {
	controllerLogger, err := logger.New("MAZE-API", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller logger: %v", err))
		os.Exit(1)
	}

	mazeController, err = mazeapi.NewMazeController(mazeService, hexEncoder, controllerLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initAuth() {
	if userRepo == nil {
		return
	}

	jwtTokenizer = token.NewJwtService(envs.JWTSecret, envs.JWTIssuer)

	authLogger, err := logger.New("AUTH", config.ColorBlue, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth logger: %v", err))
		os.Exit(1)
	}
	authService, err = service.NewAuth(userRepo, jwtTokenizer, authLogger, 0)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}

	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth initialized")
}

func initRouter() {
	controllers := []api_i.Controller{mazeController}
	var authorization gin.HandlerFunc
	if authController != nil {
		controllers = append(controllers, authController)
		authorization = identity.Authoriz(jwtTokenizer)
	}

	gin.SetMode(envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", envs.HostIP, envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             controllers,
		AuthorizationMiddleware: authorization,
	})
	appLogger.Info("Router initialized")
}

func main() {
	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	envs = config.LoadEnvs()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	initRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	initMongo(ctx)
	if mongoClient != nil {
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
	}

	initRepos(ctx)
	initMazeService()
	initMazeController()
	initAuth()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
