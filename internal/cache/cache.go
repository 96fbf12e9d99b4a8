// Package cache met un cache Redis read-through devant les stores
// utilisateurs et produits. Le middleware d'auth résout l'utilisateur du
// token ici à chaque requête, d'où le TTL court.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"orvia_back_end/internal/models"
	"orvia_back_end/internal/store"

	"github.com/redis/go-redis/v9"
)

const (
	UserCacheTTL    = 5 * time.Minute
	ProductCacheTTL = 10 * time.Minute
)

type Cache struct {
	redis    *redis.Client
	users    store.UserStore
	products store.ProductStore
}

func New(rdb *redis.Client, users store.UserStore, products store.ProductStore) *Cache {
	return &Cache{redis: rdb, users: users, products: products}
}

// GetUser récupère un utilisateur depuis Redis, ou depuis le store en cas
// de cache miss (la valeur est alors mise en cache).
func (c *Cache) GetUser(ctx context.Context, userID string) (*models.User, error) {
	key := "user:" + userID

	data, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	user, err := c.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	jsonData, _ := json.Marshal(user)
	c.redis.Set(ctx, key, jsonData, UserCacheTTL)

	return user, nil
}

// InvalidateUser invalide le cache d'un utilisateur. À appeler après toute
// mutation (checkout, changement d'adresse) pour que le middleware relise
// l'état frais.
func (c *Cache) InvalidateUser(ctx context.Context, userID string) {
	c.redis.Del(ctx, "user:"+userID)
}

// GetProduct récupère un produit, même stratégie read-through.
func (c *Cache) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	key := "product:" + productID

	data, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		var product models.Product
		if json.Unmarshal([]byte(data), &product) == nil {
			return &product, nil
		}
	}

	product, err := c.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	jsonData, _ := json.Marshal(product)
	c.redis.Set(ctx, key, jsonData, ProductCacheTTL)

	return product, nil
}

// InvalidateProduct invalide le cache d'un produit.
func (c *Cache) InvalidateProduct(ctx context.Context, productID string) {
	c.redis.Del(ctx, "product:"+productID)
}
