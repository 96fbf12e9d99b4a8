package store

import (
	"context"
	"errors"
	"fmt"

	"orvia_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaProductStore persiste le catalogue dans la table products (clé product_id).
type ScyllaProductStore struct {
	session *gocql.Session
}

func NewScyllaProductStore(session *gocql.Session) *ScyllaProductStore {
	return &ScyllaProductStore{session: session}
}

func (s *ScyllaProductStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	product := &models.Product{ID: id}
	err = s.session.Query(`SELECT name, category, cost, rating, image_urls
		FROM products WHERE product_id = ?`, gocql.UUID(pid)).WithContext(ctx).Scan(
		&product.Name, &product.Category, &product.Cost, &product.Rating, &product.ImageURLs)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scylla: find product by id: %w", err)
	}
	return product, nil
}

func (s *ScyllaProductStore) List(ctx context.Context) ([]models.Product, error) {
	iter := s.session.Query(`SELECT product_id, name, category, cost, rating, image_urls
		FROM products`).WithContext(ctx).Iter()

	var products []models.Product
	var productID gocql.UUID
	var p models.Product
	for iter.Scan(&productID, &p.Name, &p.Category, &p.Cost, &p.Rating, &p.ImageURLs) {
		p.ID = productID.String()
		products = append(products, p)
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("scylla: list products: %w", err)
	}
	return products, nil
}

func (s *ScyllaProductStore) Create(ctx context.Context, product *models.Product) error {
	pid, err := uuid.Parse(product.ID)
	if err != nil {
		return fmt.Errorf("scylla: create product: id invalide: %w", err)
	}

	err = s.session.Query(`INSERT INTO products (product_id, name, category, cost, rating, image_urls)
		VALUES (?, ?, ?, ?, ?, ?)`,
		gocql.UUID(pid), product.Name, product.Category, product.Cost, product.Rating,
		product.ImageURLs).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("scylla: insert product: %w", err)
	}
	return nil
}

func (s *ScyllaProductStore) Save(ctx context.Context, product *models.Product) error {
	pid, err := uuid.Parse(product.ID)
	if err != nil {
		return fmt.Errorf("scylla: save product: id invalide: %w", err)
	}

	err = s.session.Query("UPDATE products SET name = ?, category = ?, cost = ?, rating = ?, image_urls = ? WHERE product_id = ?",
		product.Name, product.Category, product.Cost, product.Rating, product.ImageURLs,
		gocql.UUID(pid)).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("scylla: save product: %w", err)
	}
	return nil
}
