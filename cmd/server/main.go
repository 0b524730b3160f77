package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/abheydecbs/webshop-eksamen/internal/auth"
	"github.com/abheydecbs/webshop-eksamen/internal/cache"
	"github.com/abheydecbs/webshop-eksamen/internal/cartstore"
	h "github.com/abheydecbs/webshop-eksamen/internal/http"
	"github.com/abheydecbs/webshop-eksamen/internal/repository"
	"github.com/abheydecbs/webshop-eksamen/internal/service"
)

type Config struct {
	HTTPPort        string
	SQLitePath      string
	MigrationsDir   string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "3000"),
		SQLitePath:      getEnv("SQLITE_PATH", "webshop.db"),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", "migrations"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "webshop"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// SQLite holds the catalog, users, customers and orders.
	repo, err := repository.NewRepository(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("SQLite ready at %s", cfg.SQLitePath)

	// MongoDB holds the durable carts.
	ctx := context.Background()
	mongoDB, err := cartstore.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)

	carts := cartstore.NewMongoStore(mongoDB)
	if err := carts.CreateIndexes(ctx); err != nil {
		log.Fatalf("Failed to create cart indexes: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	cartCache := cache.NewRedisCache(redisClient)
	cartService := service.NewCartService(carts, cartCache, repo)
	orderService := service.NewOrderService(repo)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	productHandler := h.NewProductHandler(repo)
	cartHandler := h.NewCartHandler(cartService, repo)
	orderHandler := h.NewOrderHandler(orderService)
	authHandler := h.NewAuthHandler(repo, tokens)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(h.AuthMiddleware(tokens)).Get("/me", authHandler.Me)
		})

		r.Route("/produkter", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/søg/{query}", productHandler.SearchProducts)
			r.Get("/{id}", productHandler.GetProduct)
		})

		r.Route("/kurv", func(r chi.Router) {
			r.Use(h.AuthMiddleware(tokens))
			r.Get("/", cartHandler.GetCart)
			r.Post("/add", cartHandler.AddLine)
			r.Put("/item/{produktId}", cartHandler.SetQuantity)
			r.Delete("/item/{produktId}", cartHandler.RemoveLine)
			r.Delete("/", cartHandler.ClearCart)
		})

		r.Route("/ordre", func(r chi.Router) {
			r.Post("/", orderHandler.CreateOrder)
			r.Get("/", orderHandler.ListOrders)
			r.Get("/{ordreId}", orderHandler.GetOrder)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "webshop"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Webshop listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
