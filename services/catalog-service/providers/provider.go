package providers

import (
	"context"

	"github.com/pawsitivecheck/backend/services/catalog-service/models"
)

// ProductSearchProvider looks a product up outside the local catalog.
// Implementations return (nil, nil) when nothing matches; an error means the
// upstream could not be queried.
type ProductSearchProvider interface {
	// SearchByBarcode resolves a product from its barcode.
	SearchByBarcode(ctx context.Context, barcode string) (*models.Product, error)

	// SearchByName runs a free-text search and returns the best candidate.
	SearchByName(ctx context.Context, query string) (*models.Product, error)
}

// Recognition is what an image recognizer extracted from a photo.
type Recognition struct {
	Barcode     string  `json:"barcode"`
	ProductName string  `json:"product_name"`
	Brand       string  `json:"brand"`
	Confidence  float64 `json:"confidence"`
}

// ImageRecognizer identifies a product from an uploaded image reference.
type ImageRecognizer interface {
	Recognize(ctx context.Context, imageRef string) (*Recognition, error)
}
