package api

import (
	"io/fs"

	"github.com/labstack/echo/v4"

	"catalog-backend/internal/auth"
	"catalog-backend/internal/database"
	"catalog-backend/internal/storage"
)

// Handlers bundles the request handlers and their dependencies. Everything
// is constructed in main and passed in; handlers hold no package-level state.
type Handlers struct {
	authSvc  *auth.Service
	products *database.ProductRepo
	audit    *database.AuditRepo
	files    *storage.Store
}

// NewHandlers creates the handler set
func NewHandlers(authSvc *auth.Service, products *database.ProductRepo, audit *database.AuditRepo, files *storage.Store) *Handlers {
	return &Handlers{
		authSvc:  authSvc,
		products: products,
		audit:    audit,
		files:    files,
	}
}

// RegisterRoutes sets up all routes. Pages come from the embedded web
// filesystem; uploaded images are served from the store directory.
func (h *Handlers) RegisterRoutes(e *echo.Echo, pages fs.FS) {
	requireAuth := auth.RequireAuth(h.authSvc)
	requireAdmin := auth.RequireAdmin()

	// Pages (public)
	e.FileFS("/", "signin.html", pages)
	e.FileFS("/signup", "signup.html", pages)
	e.FileFS("/index", "index.html", pages)
	e.StaticFS("/js", echo.MustSubFS(pages, "js"))

	// Upload form requires admin, same as the submission route
	e.FileFS("/upload", "upload.html", pages, requireAuth, requireAdmin)

	// Auth routes (public)
	e.POST("/", h.signInForm)
	e.POST("/signin", h.signIn)
	e.POST("/signup", h.signUp)
	e.POST("/logout", h.logout)

	// Dashboard routes by role
	e.GET("/dashboard", h.dashboard, requireAuth)

	// Upload submission (admin only)
	e.POST("/upload", h.upload, requireAuth, requireAdmin)

	// Public listing API and stored images
	e.GET("/api/images", h.listImages)
	e.GET("/api/health", healthCheck)
	e.Static("/uploads", h.files.Dir())
}
