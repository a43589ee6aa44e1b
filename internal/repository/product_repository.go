package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"storefront-api/internal/database"
	"storefront-api/internal/models"
)

type ProductRepository struct {
	store *database.Store
}

func NewProductRepository(store *database.Store) *ProductRepository {
	return &ProductRepository{
		store: store,
	}
}

// Create stamps the timestamps and inserts the product. The id is left
// for the store to generate.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (string, error) {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	return r.store.Insert(ctx, models.ProductCollection, product)
}

// FindAll returns every product matching filter, in natural order.
func (r *ProductRepository) FindAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.store.Query(ctx, models.ProductCollection, toBSON(filter), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories lists the distinct category values in the collection.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	return r.store.DistinctValues(ctx, models.ProductCollection, "category")
}

func (r *ProductRepository) Count(ctx context.Context, filter models.ProductFilter) (int64, error) {
	return r.store.Count(ctx, models.ProductCollection, toBSON(filter))
}

func toBSON(filter models.ProductFilter) bson.M {
	m := bson.M{}
	if filter.Category != "" {
		m["category"] = filter.Category
	}
	return m
}
