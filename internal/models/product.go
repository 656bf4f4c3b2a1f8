package models

import "time"

// Image holds the stored-file metadata recorded with every product. All
// five fields are required; a product row cannot exist without them.
type Image struct {
	Path         string    `json:"path"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	UploadDate   time.Time `json:"upload_date"`
}

// Product represents a catalog entry.
type Product struct {
	ID     int64   `json:"id"`
	Header string  `json:"header"`
	Price  float64 `json:"price"`
	Image  Image   `json:"image"`
}

// ProductListing is the public projection served by the listing API.
// Original filename, MIME type and size are never exposed externally.
type ProductListing struct {
	Header    string  `json:"header"`
	Price     float64 `json:"price"`
	ImagePath string  `json:"imagePath"`
}
