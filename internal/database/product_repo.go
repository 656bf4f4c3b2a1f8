package database

import (
	"errors"

	"catalog-backend/internal/models"
)

// ErrProductIncomplete is returned when a product is missing its header,
// price or any of the image metadata fields.
var ErrProductIncomplete = errors.New("product record incomplete")

// ProductRepo handles product database operations
type ProductRepo struct {
	db *DB
}

// NewProductRepo creates a new product repository
func NewProductRepo(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persists a product. A product never exists without fully populated
// image metadata; the NOT NULL columns are the storage-level backstop, this
// check rejects partial records before they reach the driver.
func (r *ProductRepo) Create(product *models.Product) error {
	img := product.Image
	if product.Header == "" || img.Path == "" || img.OriginalName == "" ||
		img.MimeType == "" || img.Size <= 0 || img.UploadDate.IsZero() {
		return ErrProductIncomplete
	}

	result, err := r.db.sql.Exec(`
		INSERT INTO products (header, price, image_path, image_original_name, image_mime_type, image_size, image_upload_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, product.Header, product.Price, img.Path, img.OriginalName, img.MimeType, img.Size, img.UploadDate)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	product.ID = id

	return nil
}

// List retrieves all products in storage order
func (r *ProductRepo) List() ([]*models.Product, error) {
	rows, err := r.db.sql.Query(`
		SELECT id, header, price, image_path, image_original_name, image_mime_type, image_size, image_upload_date
		FROM products
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		err := rows.Scan(
			&product.ID, &product.Header, &product.Price,
			&product.Image.Path, &product.Image.OriginalName, &product.Image.MimeType,
			&product.Image.Size, &product.Image.UploadDate,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

// ListProjected returns the public listing projection: header, price and
// stored image path only.
func (r *ProductRepo) ListProjected() ([]models.ProductListing, error) {
	rows, err := r.db.sql.Query("SELECT header, price, image_path FROM products")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []models.ProductListing{}
	for rows.Next() {
		var l models.ProductListing
		if err := rows.Scan(&l.Header, &l.Price, &l.ImagePath); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

// Count returns the total number of products
func (r *ProductRepo) Count() (int, error) {
	var count int
	err := r.db.sql.QueryRow("SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}
