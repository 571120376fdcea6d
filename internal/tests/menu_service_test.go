package tests

import (
	"context"
	"errors"
	"testing"

	"dinesync/internal/domain"
	"dinesync/internal/mocks"
	"dinesync/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuService_OnlineReadThrough(t *testing.T) {
	backend := mocks.NewBackend(t)
	cache := mocks.NewMenuCache(t)
	svc := service.NewMenuService(backend, cache)

	ctx := context.Background()
	fresh := domain.MenuResponse{
		Restaurant: domain.Restaurant{ID: "r1", Name: "Chez Nous", Currency: "FCFA"},
		Categories: []domain.Category{{ID: "c1", RestaurantID: "r1", Name: "Drinks"}},
		Products: []domain.Product{
			{ID: "p1", RestaurantID: "r1", CategoryID: "c1", Name: "Tea", Price: 1500, Available: true},
			{ID: "p2", RestaurantID: "r1", CategoryID: "c1", Name: "Coffee", Price: 2000, Available: true},
		},
	}

	backend.On("Menu", ctx, "r1").Return(fresh, nil).Once()
	cache.On("CacheMenu", fresh.Restaurant, fresh.Categories, fresh.Products).Return(nil).Once()

	menu, err := svc.GetMenu(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, fresh, menu)
}

func TestMenuService_FallsBackToCache(t *testing.T) {
	backend := mocks.NewBackend(t)
	cache := mocks.NewMenuCache(t)
	svc := service.NewMenuService(backend, cache)

	ctx := context.Background()
	cachedRestaurant := &domain.Restaurant{ID: "r1", Name: "Chez Nous", Currency: "FCFA"}
	cachedProducts := []domain.Product{{ID: "p1", RestaurantID: "r1", Name: "Tea", Price: 1500}}

	backend.On("Menu", ctx, "r1").Return(domain.MenuResponse{}, errors.New("connection refused")).Once()
	cache.On("GetCachedMenu", "r1").Return(cachedRestaurant, []domain.Category{}, cachedProducts, nil).Once()

	menu, err := svc.GetMenu(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, *cachedRestaurant, menu.Restaurant)
	assert.Equal(t, cachedProducts, menu.Products)
}

func TestMenuService_EmptyCacheYieldsSafeDefault(t *testing.T) {
	backend := mocks.NewBackend(t)
	cache := mocks.NewMenuCache(t)
	svc := service.NewMenuService(backend, cache)

	ctx := context.Background()
	backend.On("Menu", ctx, "r1").Return(domain.MenuResponse{}, errors.New("connection refused")).Once()
	cache.On("GetCachedMenu", "r1").Return(nil, nil, nil, nil).Once()

	menu, err := svc.GetMenu(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.Restaurant{ID: "r1", Name: "Restaurant", Currency: "FCFA"}, menu.Restaurant)
	assert.Empty(t, menu.Categories)
	assert.Empty(t, menu.Products)
	assert.NotNil(t, menu.Categories)
	assert.NotNil(t, menu.Products)
}

func TestMenuService_CacheErrorStillYieldsDefault(t *testing.T) {
	backend := mocks.NewBackend(t)
	cache := mocks.NewMenuCache(t)
	svc := service.NewMenuService(backend, cache)

	ctx := context.Background()
	backend.On("Menu", ctx, "r1").Return(domain.MenuResponse{}, errors.New("timeout")).Once()
	cache.On("GetCachedMenu", "r1").Return(nil, nil, nil, errors.New("disk corrupted")).Once()

	menu, err := svc.GetMenu(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Restaurant", menu.Restaurant.Name)
	assert.Equal(t, "FCFA", menu.Restaurant.Currency)
}
