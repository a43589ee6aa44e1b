package handlers

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-api/internal/models"
)

// memoryRepository is an in-memory ProductRepository for handler tests.
type memoryRepository struct {
	mu       sync.RWMutex
	products []models.Product
	err      error
	creates  int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, product *models.Product) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.creates++
	if r.err != nil {
		return "", r.err
	}
	product.ID = primitive.NewObjectID()
	r.products = append(r.products, *product)
	return product.ID.Hex(), nil
}

func (r *memoryRepository) FindAll(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Category == "" || p.Category == filter.Category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepository) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.err != nil {
		return nil, r.err
	}
	seen := map[string]bool{}
	var out []string
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (r *memoryRepository) Count(ctx context.Context, filter models.ProductFilter) (int64, error) {
	products, err := r.FindAll(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(products)), nil
}

func (r *memoryRepository) createCalls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.creates
}
