package main

import (
	"embed"
	"io/fs"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"catalog-backend/internal/api"
	"catalog-backend/internal/auth"
	"catalog-backend/internal/config"
	"catalog-backend/internal/database"
	"catalog-backend/internal/models"
	"catalog-backend/internal/storage"
)

//go:embed web
var webFS embed.FS

func main() {
	// Missing required configuration is fatal; the process refuses to start
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Printf("Initializing database at %s", cfg.DatabaseDSN)
	db, err := database.Open(database.Config{DSN: cfg.DatabaseDSN})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	userRepo := database.NewUserRepo(db)
	sessionRepo := database.NewSessionRepo(db, cfg.SessionSecret)
	settingsRepo := database.NewSettingsRepo(db)
	productRepo := database.NewProductRepo(db)
	auditRepo := database.NewAuditRepo(db)

	// Create default admin user if no users exist
	if err := createDefaultAdminIfNeeded(userRepo); err != nil {
		log.Printf("Warning: failed to create default admin: %v", err)
	}

	maxMB, err := settingsRepo.GetInt(database.SettingUploadMaxMB)
	if err != nil || maxMB <= 0 {
		maxMB = 10
	}
	fileStore, err := storage.New(cfg.UploadDir, int64(maxMB)<<20)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	authSvc := auth.NewService(userRepo, sessionRepo, settingsRepo)
	handlers := api.NewHandlers(authSvc, productRepo, auditRepo, fileStore)

	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	pages, err := fs.Sub(webFS, "web")
	if err != nil {
		log.Fatalf("Failed to load embedded pages: %v", err)
	}
	handlers.RegisterRoutes(e, pages)

	log.Printf("Starting catalog backend on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

// createDefaultAdminIfNeeded creates a default admin user if no users exist.
// This is the only path that provisions an admin; signup never does.
func createDefaultAdminIfNeeded(userRepo *database.UserRepo) error {
	count, err := userRepo.Count()
	if err != nil {
		return err
	}

	if count > 0 {
		return nil // Users already exist
	}

	log.Println("Creating default admin user (admin/admin) - CHANGE THIS PASSWORD!")

	passwordHash, err := auth.HashPassword("admin")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     "admin",
		PasswordHash: passwordHash,
		IsAdmin:      true,
	}

	return userRepo.Create(admin)
}
