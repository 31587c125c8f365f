package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/mkandawire/supplyhub-backend/internal/modules/auth"
	"github.com/mkandawire/supplyhub-backend/internal/modules/catalog"
	"github.com/mkandawire/supplyhub-backend/internal/modules/invoice"
	"github.com/mkandawire/supplyhub-backend/internal/modules/notification"
	"github.com/mkandawire/supplyhub-backend/internal/modules/order"
	"github.com/mkandawire/supplyhub-backend/internal/modules/restaurant"
	"github.com/mkandawire/supplyhub-backend/internal/modules/user"
	"github.com/mkandawire/supplyhub-backend/internal/modules/vendor"
	"github.com/mkandawire/supplyhub-backend/internal/modules/watcher"
	"github.com/mkandawire/supplyhub-backend/internal/platform/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	dbURL := os.Getenv("DATABASE_URL")
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Parties ─────────────────────────────────────────────
	vendorRepo := vendor.NewPostgresRepository(db)
	vendorService := vendor.NewService(vendorRepo)
	vendor.NewHandler(vendorService).RegisterRoutes(router)

	restaurantRepo := restaurant.NewPostgresRepository(db)
	restaurantService := restaurant.NewService(restaurantRepo)
	restaurant.NewHandler(restaurantService).RegisterRoutes(router)

	// ── Catalog ─────────────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Orders ──────────────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Invoices ────────────────────────────────────────────
	invoiceRepo := invoice.NewPostgresRepository(db)
	invoiceService := invoice.NewService(invoiceRepo, orderRepo, vendorRepo, restaurantRepo, catalogRepo)
	invoice.NewHandler(invoiceService).RegisterRoutes(router)

	// ── Notifications ───────────────────────────────────────
	var publisher notification.Publisher
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		amqpPublisher, err := notification.NewAMQPPublisher(url)
		if err != nil {
			log.Fatal(err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		fmt.Println("Notification fanout connected to RabbitMQ")
	}
	notificationRepo := notification.NewPostgresRepository(db)
	notificationService := notification.NewService(notificationRepo, publisher)
	notification.NewHandler(notificationService).RegisterRoutes(router)

	// ── Order change watcher ────────────────────────────────
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watchLog := logger.New("order-watcher")
	feed := watcher.NewPQFeed(dbURL, orderRepo, watchLog)
	w := watcher.New(feed, notificationService, invoiceService, watchLog, 4)
	go func() {
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			watchLog.Error("watcher_exit", "order change watcher exited", err)
		}
	}()

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("SupplyHub API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
