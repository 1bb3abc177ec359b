package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claudioasousa/Espetaria-PRO/internal/dto"
	"github.com/claudioasousa/Espetaria-PRO/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	menuCacheKey = "espetaria:menu"
	menuCacheTTL = 60 * time.Second
)

// ProductService serves the menu snapshot the order-taking clients render.
// The catalog changes rarely, so reads go through a short-TTL Redis
// cache-aside layer.
type ProductService interface {
	List(ctx context.Context) ([]dto.ProductResponse, error)
}

type productService struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, rdb: rdb}
}

func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	// 1. Try Redis cache — a miss or a dead Redis both fall through to the DB
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, menuCacheKey).Bytes(); err == nil {
			var out []dto.ProductResponse
			if jsonErr := json.Unmarshal(cached, &out); jsonErr == nil {
				return out, nil
			}
		}
	}

	// 2. Cache miss — query DB
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		out = append(out, dto.ProductResponse{
			ID:       p.ID.String(),
			Name:     p.Name,
			Price:    p.Price,
			Category: category,
			Stock:    p.Stock,
		})
	}

	// 3. Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(out); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), menuCacheKey, b, menuCacheTTL).Err()
		}
	}
	return out, nil
}
