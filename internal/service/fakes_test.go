package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/asquebay/star-burger-service/internal/lib/geo"
	"github.com/asquebay/star-burger-service/internal/model"
	"github.com/asquebay/star-burger-service/internal/repository/postgres"
)

// фейки репозиториев и геокодера для юнит-тестов сервисного слоя

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeOrderRepo struct {
	created   []model.Order
	nextID    int64
	createErr error
	active    []model.Order
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order model.Order) (int64, error) {
	if r.createErr != nil {
		// при ошибке ничего не сохраняется: репозиторий пишет заказ
		// и позиции одной транзакцией
		return 0, r.createErr
	}
	r.nextID++
	order.ID = r.nextID
	r.created = append(r.created, order)
	return r.nextID, nil
}

func (r *fakeOrderRepo) ActiveOrders(_ context.Context) ([]model.Order, error) {
	return r.active, nil
}

func (r *fakeOrderRepo) OrderByID(_ context.Context, id int64) (model.Order, error) {
	for _, order := range r.created {
		if order.ID == id {
			return order, nil
		}
	}
	return model.Order{}, postgres.ErrOrderNotFound
}

type fakeCatalogRepo struct {
	available map[int64]struct{}
	products  map[int64]model.Product
	menu      []model.RestaurantMenuItem
}

func (r *fakeCatalogRepo) Restaurants(_ context.Context) ([]model.Restaurant, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) AvailableMenuItems(_ context.Context) ([]model.RestaurantMenuItem, error) {
	return r.menu, nil
}

func (r *fakeCatalogRepo) AvailableProductIDs(_ context.Context) (map[int64]struct{}, error) {
	return r.available, nil
}

func (r *fakeCatalogRepo) ProductsByIDs(_ context.Context, ids []int64) (map[int64]model.Product, error) {
	result := make(map[int64]model.Product)
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (r *fakeCatalogRepo) ProductsWithAvailability(_ context.Context) ([]model.ProductAvailability, error) {
	return nil, nil
}

type fakePlaceRepo struct {
	mu     sync.Mutex
	places map[string]model.Place
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{places: map[string]model.Place{}}
}

func (r *fakePlaceRepo) ByAddress(_ context.Context, address string) (model.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if place, ok := r.places[address]; ok {
		return place, nil
	}
	return model.Place{}, postgres.ErrPlaceNotFound
}

func (r *fakePlaceRepo) Create(_ context.Context, address string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.places[address]; ok {
		return false, nil
	}
	r.places[address] = model.Place{Address: address}
	return true, nil
}

func (r *fakePlaceRepo) UpdateCoordinates(_ context.Context, place model.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.places[place.Address] = place
	return nil
}

func (r *fakePlaceRepo) All(_ context.Context) ([]model.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	places := make([]model.Place, 0, len(r.places))
	for _, place := range r.places {
		places = append(places, place)
	}
	return places, nil
}

type fakeGeocoder struct {
	calls  int
	points map[string]geo.Point
	err    error
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (geo.Point, bool, error) {
	g.calls++
	if g.err != nil {
		return geo.Point{}, false, g.err
	}
	point, ok := g.points[address]
	return point, ok, nil
}

// fakeResolver подменяет PlaceService в тестах дашборда
type fakeResolver struct {
	points map[string]geo.Point
}

func (r *fakeResolver) ResolveCoordinates(_ context.Context, address string) (*geo.Point, error) {
	if point, ok := r.points[address]; ok {
		return &point, nil
	}
	return nil, nil
}
