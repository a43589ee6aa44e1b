package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductCollection is the collection products are stored in.
const ProductCollection = "product"

// Product is a catalog entry as stored in the product collection.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description *string            `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Category    string             `json:"category" bson:"category"`
	InStock     bool               `json:"in_stock" bson:"in_stock"`
	Image       *string            `json:"image" bson:"image"`
	Tag         *string            `json:"tag" bson:"tag"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProductFilter is the only query shape the catalog supports. An empty
// Category matches every product.
type ProductFilter struct {
	Category string `form:"category"`
}
