package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/config"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/database"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/handlers"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/middleware"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/repository"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/routes"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB (journal entries)
	log.Printf("Connecting to MongoDB...")
	if err := database.ConnectMongo(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.DisconnectMongo()

	if err := repository.EnsureJournalIndexes(context.Background(), database.MongoDB); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure journal indexes: %v", err)
	} else {
		log.Println("✅ MongoDB journal indexes ensured")
	}

	// Repositories
	users := repository.NewUsers(database.PostgresDB)
	bookings := repository.NewBookings(database.PostgresDB)
	notes := repository.NewSessionNotes(database.PostgresDB)
	subscriptions := repository.NewSubscriptions(database.PostgresDB)
	articles := repository.NewArticles(database.PostgresDB)
	journals := repository.NewJournals(database.MongoDB)

	// Services
	events := services.NewEventHub(database.RedisClient)
	events.StartSubscriber(context.Background())

	h := &handlers.Handlers{
		Sessions:      services.NewSessionService(users, database.RedisClient, events),
		AdminAuth:     services.NewAdminSessions(users, database.RedisClient),
		Booking:       services.NewBookingService(bookings, events),
		Dashboard:     services.NewDashboardAggregator(bookings, notes, journals, subscriptions, events),
		Content:       services.NewContentService(articles),
		Events:        events,
		AdminBookings: bookings,
		Notes:         notes,
		Posts:         articles,
	}

	// Initialize Cloudinary for blog cover uploads
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		uploads, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Cover image uploads will not be available")
		} else {
			h.Uploads = uploads
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Cover image uploads will not be available")
	}

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit)

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, h)

	log.Printf("🚀 Anam Therapy backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
