package service

import (
	"context"

	"github.com/asquebay/star-burger-service/internal/lib/geo"
	"github.com/asquebay/star-burger-service/internal/model"
)

// OrderRepository определяет контракт для хранилища заказов в БД
type OrderRepository interface {
	CreateOrder(ctx context.Context, order model.Order) (int64, error)
	ActiveOrders(ctx context.Context) ([]model.Order, error)
	OrderByID(ctx context.Context, id int64) (model.Order, error)
}

// CatalogRepository определяет контракт для чтения каталога
type CatalogRepository interface {
	Restaurants(ctx context.Context) ([]model.Restaurant, error)
	AvailableMenuItems(ctx context.Context) ([]model.RestaurantMenuItem, error)
	AvailableProductIDs(ctx context.Context) (map[int64]struct{}, error)
	ProductsByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error)
	ProductsWithAvailability(ctx context.Context) ([]model.ProductAvailability, error)
}

// PlaceRepository определяет контракт для постоянного кэша геокодирования
type PlaceRepository interface {
	ByAddress(ctx context.Context, address string) (model.Place, error)
	Create(ctx context.Context, address string) (created bool, err error)
	UpdateCoordinates(ctx context.Context, place model.Place) error
	All(ctx context.Context) ([]model.Place, error)
}

// PlaceCache определяет контракт для in-memory кэша мест
type PlaceCache interface {
	Set(place model.Place)
	Get(address string) (model.Place, bool)
	LoadAll(places []model.Place)
}

// Geocoder — внешний сервис, умеющий превращать адрес в координаты
// found=false означает "адрес не найден" и не является ошибкой
type Geocoder interface {
	Geocode(ctx context.Context, address string) (point geo.Point, found bool, err error)
}

// PlaceResolver определяет контракт резолвера координат для сервиса заказов
type PlaceResolver interface {
	ResolveCoordinates(ctx context.Context, address string) (*geo.Point, error)
}
