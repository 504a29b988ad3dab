package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"userdirectory/config"
	"userdirectory/internal/application/usecase"
	"userdirectory/internal/infrastructure"
	"userdirectory/internal/logger"
	"userdirectory/internal/middleware"
	grpc_server "userdirectory/internal/transport/grpc"
	handlers "userdirectory/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	// 1. Конфиг и логгер
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zl.Sync()

	// 2. Хранилище
	store, err := infrastructure.NewStore(cfg, zl)
	if err != nil {
		zl.Fatal("Failed to open store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			zl.Error("Failed to close store", zap.Error(err))
			return
		}
		zl.Info("Store closed")
	}()

	if err := store.Initialize(context.Background(), cfg.SeedSampleData); err != nil {
		zl.Error("Failed to initialize store", zap.Error(err))
		return
	}
	zl.Info("Store ready", zap.String("backend", store.Name()), zap.String("driver", cfg.StoreDriver))

	// 3. Redis для rate limit (опционально)
	var limiter *middleware.RateLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zl.Error("Failed to connect to Redis", zap.Error(err))
			return
		}
		limiter = middleware.NewRateLimiter(rdb, zl)
		zl.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))
	}

	// 4. Слои
	userUseCase := usecase.NewUserUseCase(store, zl)
	router := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins:  cfg.Origins(),
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
	}, handlers.NewUserHandler(userUseCase), limiter, zl)

	httpServer := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		zl.Info("HTTP server running", zap.String("addr", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 5. gRPC (если задан порт)
	var grpcServer *grpc.Server
	if cfg.GRPCPort != "" {
		lis, err := net.Listen("tcp", cfg.GRPCPort)
		if err != nil {
			zl.Error("Failed to listen", zap.String("addr", cfg.GRPCPort), zap.Error(err))
			return
		}
		grpcServer = grpc.NewServer()
		grpc_server.RegisterUserDirectoryServer(grpcServer, grpc_server.NewUserServer(userUseCase))
		healthpb.RegisterHealthServer(grpcServer, health.NewServer())

		go func() {
			zl.Info("gRPC server running", zap.String("addr", cfg.GRPCPort))
			if err := grpcServer.Serve(lis); err != nil {
				errCh <- err
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		zl.Info("Shutting down server...", zap.String("signal", sig.String()))
	case err := <-errCh:
		zl.Error("Server failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		zl.Error("HTTP shutdown", zap.Error(err))
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
}
