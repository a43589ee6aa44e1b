package seed

import (
	"context"

	"storefront-api/internal/models"
)

// Repository is the subset of the product repository seeding needs.
type Repository interface {
	Count(ctx context.Context, filter models.ProductFilter) (int64, error)
	Create(ctx context.Context, product *models.Product) (string, error)
}

// Result reports what Apply did. Exactly one of the fields is non-zero.
type Result struct {
	Existing int64
	Inserted int
}

type productSeed struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string
	Tag         string
}

var samples = []productSeed{
	{
		Title:       "Essential Tee",
		Description: "Ultra-soft cotton tee with a relaxed fit.",
		Price:       29.0,
		Category:    "Tops",
		Image:       "https://images.unsplash.com/photo-1520975922224-c3b61545d0f3?q=80&w=1400&auto=format&fit=crop",
		Tag:         "New",
	},
	{
		Title:       "Classic Hoodie",
		Description: "Cozy fleece hoodie for everyday comfort.",
		Price:       59.0,
		Category:    "Outerwear",
		Image:       "https://images.unsplash.com/photo-1520974735194-5f2d45c7c6b3?q=80&w=1400&auto=format&fit=crop",
		Tag:         "Bestseller",
	},
	{
		Title:       "Slim Fit Jeans",
		Description: "Stretch denim with a modern slim silhouette.",
		Price:       79.0,
		Category:    "Bottoms",
		Image:       "https://images.unsplash.com/photo-1516826957135-700dedea698c?q=80&w=1400&auto=format&fit=crop",
		Tag:         "",
	},
	{
		Title:       "Athletic Joggers",
		Description: "Lightweight joggers designed for movement.",
		Price:       49.0,
		Category:    "Bottoms",
		Image:       "https://images.unsplash.com/photo-1519741497674-611481863552?q=80&w=1400&auto=format&fit=crop",
		Tag:         "Limited",
	},
	{
		Title:       "Everyday Cap",
		Description: "Minimal cap with adjustable strap.",
		Price:       25.0,
		Category:    "Accessories",
		Image:       "https://images.unsplash.com/photo-1592878904946-b3cd5f0775c7?q=80&w=1400&auto=format&fit=crop",
		Tag:         "",
	},
}

// Samples returns fresh copies of the sample products.
func Samples() []models.Product {
	out := make([]models.Product, 0, len(samples))
	for _, s := range samples {
		description, image, tag := s.Description, s.Image, s.Tag
		out = append(out, models.Product{
			Title:       s.Title,
			Description: &description,
			Price:       s.Price,
			Category:    s.Category,
			InStock:     true,
			Image:       &image,
			Tag:         &tag,
		})
	}
	return out
}

// Apply inserts the sample products when the collection is empty. It is a
// no-op reporting the current count otherwise.
func Apply(ctx context.Context, repo Repository) (Result, error) {
	count, err := repo.Count(ctx, models.ProductFilter{})
	if err != nil {
		return Result{}, err
	}
	if count > 0 {
		return Result{Existing: count}, nil
	}

	products := Samples()
	for i := range products {
		if _, err := repo.Create(ctx, &products[i]); err != nil {
			return Result{Inserted: i}, err
		}
	}
	return Result{Inserted: len(products)}, nil
}
