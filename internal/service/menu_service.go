package service

import (
	"context"
	"log"

	"dinesync/internal/domain"
)

// Default shown when neither the backend nor the cache has a restaurant, so
// the menu surface always has something renderable.
const (
	fallbackRestaurantName = "Restaurant"
	fallbackCurrency       = "FCFA"
)

type MenuService struct {
	backend Backend
	cache   MenuCache
}

func NewMenuService(backend Backend, cache MenuCache) *MenuService {
	return &MenuService{backend: backend, cache: cache}
}

// GetMenu reads through the backend: fresh data is written to the cache and
// returned; on failure the cached menu is served, and an empty cache yields
// a minimal safe default instead of an error.
func (s *MenuService) GetMenu(ctx context.Context, restaurantID string) (domain.MenuResponse, error) {
	menu, err := s.backend.Menu(ctx, restaurantID)
	if err == nil {
		if cacheErr := s.cache.CacheMenu(menu.Restaurant, menu.Categories, menu.Products); cacheErr != nil {
			log.Printf("[dinesync] failed to cache menu for %s: %v", restaurantID, cacheErr)
		}
		if menu.Categories == nil {
			menu.Categories = []domain.Category{}
		}
		if menu.Products == nil {
			menu.Products = []domain.Product{}
		}
		return menu, nil
	}

	log.Printf("[dinesync] menu fetch failed for %s, falling back to cache: %v", restaurantID, err)

	restaurant, categories, products, cacheErr := s.cache.GetCachedMenu(restaurantID)
	if cacheErr != nil {
		log.Printf("[dinesync] cached menu read failed for %s: %v", restaurantID, cacheErr)
		restaurant = nil
	}
	if restaurant == nil {
		return domain.MenuResponse{
			Restaurant: domain.Restaurant{
				ID:       restaurantID,
				Name:     fallbackRestaurantName,
				Currency: fallbackCurrency,
			},
			Categories: []domain.Category{},
			Products:   []domain.Product{},
		}, nil
	}

	if categories == nil {
		categories = []domain.Category{}
	}
	if products == nil {
		products = []domain.Product{}
	}
	return domain.MenuResponse{
		Restaurant: *restaurant,
		Categories: categories,
		Products:   products,
	}, nil
}
