package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Fouad192/Elagi-Backend/cache"
	paymobControllers "github.com/Fouad192/Elagi-Backend/controllers/paymob"
	"github.com/Fouad192/Elagi-Backend/mailer"
	"github.com/Fouad192/Elagi-Backend/models"
	"github.com/Fouad192/Elagi-Backend/ocr"
	"github.com/Fouad192/Elagi-Backend/routes"
)

func main() {
	log.Println("Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Medicine{},
		&models.Favorite{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.RareMedicineRequest{},
		&models.Donation{},
		&models.Contact{},
		&models.Feedback{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	if err := models.SeedMedicines(db); err != nil {
		log.Fatalf("Medicine seeding failed: %v", err)
	}

	// Redis backs pending registrations, token revocation and checkout locks
	rdb, err := cache.NewRedisClient()
	if err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	store := cache.NewStore(rdb)

	mail, err := mailer.NewSMTPMailer()
	if err != nil {
		log.Fatalf("Mailer setup failed: %v", err)
	}

	pay, err := paymobControllers.NewClientFromEnv()
	if err != nil {
		log.Fatalf("Paymob setup failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded prescription and lab-result images
	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	r.Static("/uploads", uploadsDir)

	routes.SetupRoutes(r, db, store, mail, pay, ocr.NewTesseractExtractor(), ocr.NewScriptLabAnalyzer())

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}
	return db
}
