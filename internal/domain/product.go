package domain

import (
	"time"
)

type Product struct {
	ProductID   string    `dynamodbav:"product_id" json:"product_id"`
	Name        string    `dynamodbav:"name"        json:"name"`
	Description string    `dynamodbav:"description" json:"description"`
	Category    string    `dynamodbav:"category"    json:"category"`
	Price       float64   `dynamodbav:"price"       json:"price"`
	Stock       int       `dynamodbav:"stock"       json:"stock"`
	Available   bool      `dynamodbav:"available"   json:"available"`
	Image       string    `dynamodbav:"image"       json:"image,omitempty"`
	CreatedAt   time.Time `dynamodbav:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `dynamodbav:"updated_at"  json:"updated_at"`
}

type CreateProductRequest struct {
	ProductID   string  `json:"product_id" binding:"required"`
	Name        string  `json:"name"       binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"      binding:"required,min=0"`
	Stock       int     `json:"stock"      binding:"min=0"`
	Image       string  `json:"image"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name"        binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"       binding:"required,min=0"`
	Image       string  `json:"image"`
}

type UpdateStockRequest struct {
	Stock int `json:"stock" binding:"min=0"`
}

type ProductResponse struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Available   bool    `json:"available"`
	Image       string  `json:"image,omitempty"`
}

func NewProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		Available:   p.Available,
		Image:       p.Image,
	}
}
