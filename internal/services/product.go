package services

import (
	"context"
	"errors"

	"orvia_back_end/internal/apperr"
	"orvia_back_end/internal/models"
	"orvia_back_end/internal/store"

	"github.com/google/uuid"
)

// Searcher abstrait l'index de recherche du catalogue.
type Searcher interface {
	IndexProduct(ctx context.Context, p models.Product)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
}

// ProductService sert le catalogue : lecture pour tous, écriture et
// indexation pour l'admin.
type ProductService struct {
	products store.ProductStore
	searcher Searcher
}

func NewProductService(products store.ProductStore, searcher Searcher) *ProductService {
	return &ProductService{products: products, searcher: searcher}
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("Product not found")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to fetch product", err)
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to list products", err)
	}
	return products, nil
}

// Create insère le produit au catalogue puis l'indexe pour la recherche.
func (s *ProductService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperr.Internal("Failed to create product", err)
	}
	if s.searcher != nil {
		s.searcher.IndexProduct(ctx, *product)
	}
	return product, nil
}

// Search interroge l'index plein texte.
func (s *ProductService) Search(ctx context.Context, query string) ([]models.Product, error) {
	if s.searcher == nil {
		return nil, apperr.Internal("Search is not available", nil)
	}
	results, err := s.searcher.SearchProducts(ctx, query)
	if err != nil {
		return nil, apperr.Internal("Search failed", err)
	}
	return results, nil
}

// AttachImage ajoute l'URL d'une image uploadée au produit et réindexe.
func (s *ProductService) AttachImage(ctx context.Context, id, imageURL string) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.ImageURLs = append(product.ImageURLs, imageURL)
	if err := s.products.Save(ctx, product); err != nil {
		return nil, apperr.Internal("Failed to save product", err)
	}
	if s.searcher != nil {
		s.searcher.IndexProduct(ctx, *product)
	}
	return product, nil
}
