package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"catalog-backend/internal/auth"
	"catalog-backend/internal/models"
	"catalog-backend/internal/storage"
)

// upload handles POST /upload. Reachable only through the admin gate.
func (h *Handlers) upload(c echo.Context) error {
	header := c.FormValue("header")
	priceStr := c.FormValue("price")

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "no file provided",
		})
	}

	if header == "" || priceStr == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "header and price are required",
		})
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "price must be numeric",
		})
	}

	path, err := h.files.Save(file)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "file too large",
			})
		}
		c.Logger().Error("upload save error: ", err)
		return c.String(http.StatusInternalServerError, "Server Error")
	}

	product := &models.Product{
		Header: header,
		Price:  price,
		Image: models.Image{
			Path:         path,
			OriginalName: file.Filename,
			MimeType:     file.Header.Get("Content-Type"),
			Size:         file.Size,
			UploadDate:   time.Now(),
		},
	}

	if err := h.products.Create(product); err != nil {
		// Don't leave an orphaned file behind a failed insert
		h.files.Remove(path)
		c.Logger().Error("product create error: ", err)
		return c.String(http.StatusInternalServerError, "Server Error")
	}

	if user := auth.GetUserFromContext(c); user != nil {
		h.audit.Log(user.ID, user.Username, models.AuditActionUpload, product.Header, c.RealIP())
	}

	// Idempotent re-display of the upload form
	return c.Redirect(http.StatusSeeOther, "/upload")
}

// listImages handles GET /api/images. Public; projects header, price and
// stored path only.
func (h *Handlers) listImages(c echo.Context) error {
	listings, err := h.products.ListProjected()
	if err != nil {
		c.Logger().Error("list products error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Server Error",
		})
	}

	return c.JSON(http.StatusOK, listings)
}

// healthCheck handles GET /api/health
func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
