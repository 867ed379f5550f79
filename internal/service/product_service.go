package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductExists     = errors.New("product already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductService covers the catalog side: admin CRUD, restocking, and the
// availability toggle. The storefront reads products through it as well.
type ProductService struct {
	inventory InventoryStore
	logger    *zap.Logger
}

func NewProductService(inventory InventoryStore, logger *zap.Logger) *ProductService {
	return &ProductService{
		inventory: inventory,
		logger:    logger,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	existing, _ := s.inventory.GetProduct(ctx, req.ProductID)
	if existing != nil {
		return nil, ErrProductExists
	}

	product := &domain.Product{
		ProductID:   req.ProductID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Available:   req.Stock > 0,
		Image:       req.Image,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.inventory.CreateProduct(ctx, product); err != nil {
		s.logger.Error("Failed to save product",
			zap.String("product_id", product.ProductID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created successfully",
		zap.String("product_id", product.ProductID),
		zap.Int("initial_stock", product.Stock))

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.inventory.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.inventory.ListProducts(ctx)
}

func (s *ProductService) UpdateProduct(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.inventory.UpdateProduct(ctx, productID, req)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.logger.Info("Product updated",
		zap.String("product_id", productID))

	return product, nil
}

// UpdateStock overwrites the stock counter. Restocking to zero (or below)
// also marks the product unavailable, mirroring the checkout path.
func (s *ProductService) UpdateStock(ctx context.Context, productID string, stock int) (*domain.Product, error) {
	product, err := s.inventory.SetStock(ctx, productID, stock)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.logger.Info("Stock updated",
		zap.String("product_id", productID),
		zap.Int("stock", stock),
		zap.Bool("available", product.Available))

	return product, nil
}

func (s *ProductService) ToggleAvailability(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.inventory.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.inventory.SetAvailability(ctx, productID, !product.Available); err != nil {
		return nil, err
	}
	product.Available = !product.Available

	s.logger.Info("Availability toggled",
		zap.String("product_id", productID),
		zap.Bool("available", product.Available))

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.inventory.DeleteProduct(ctx, productID); err != nil {
		s.logger.Error("Failed to delete product",
			zap.String("product_id", productID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Product deleted",
		zap.String("product_id", productID))

	return nil
}
