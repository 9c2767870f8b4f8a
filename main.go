package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"AMS-backend/internal/asset_mgmt/assets"
	"AMS-backend/internal/asset_mgmt/custom_requests"
	"AMS-backend/internal/asset_mgmt/requests"
	"AMS-backend/internal/payments"
	"AMS-backend/internal/platform/auth"
	"AMS-backend/internal/platform/db"
	"AMS-backend/internal/users"
)

func main() {
	// secrets come from .env, everything else from config.yaml
	_ = godotenv.Load()

	cfg, err := db.LoadConfig("config/config.yaml")
	if err != nil {
		panic(err)
	}

	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		fmt.Println("Usage: go run main.go [dev|release]")
		return
	}

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		log.Fatal("[ERROR] JWT_SECRET is not set")
	}
	stripeKey := os.Getenv("STRIPE_SECRET")
	if stripeKey == "" {
		log.Fatal("[ERROR] STRIPE_SECRET is not set")
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	if err := db.Migrate(conn, cfg.DB.DBName, "migrations"); err != nil {
		log.Fatal(err)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS for the Vite dev servers
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173", "http://localhost:5174"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// route groups by required privilege; paths themselves stay flat
	// because they are the frontend contract
	public := r.Group("")
	authed := r.Group("", auth.RequireAuth(secret))
	managers := r.Group("", auth.RequireAuth(secret), auth.RequireRole(users.RoleManager, users.RoleAdmin))
	admins := r.Group("", auth.RequireAuth(secret), auth.RequireRole(users.RoleAdmin))

	auth.RegisterRoutes(public, auth.NewService(secret))
	assets.RegisterRoutes(authed, managers, assets.NewService(assets.NewStore(conn)))
	requests.RegisterRoutes(authed, managers, requests.NewService(requests.NewStore(conn)))
	custom_requests.RegisterRoutes(authed, managers, custom_requests.NewService(custom_requests.NewStore(conn)))
	users.RegisterRoutes(public, authed, managers, admins, users.NewService(users.NewStore(conn)))
	payments.RegisterRoutes(managers, payments.NewService(payments.NewStripeCreator(stripeKey)))

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
