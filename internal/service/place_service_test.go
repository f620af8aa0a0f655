package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asquebay/star-burger-service/internal/lib/geo"
	"github.com/asquebay/star-burger-service/internal/model"
	"github.com/asquebay/star-burger-service/internal/repository/cache"
	"github.com/asquebay/star-burger-service/internal/repository/postgres"
)

const testAddress = "Москва, ул. Мира, 15"

func newPlaceService(repo PlaceRepository, geocoder Geocoder) *PlaceService {
	return NewPlaceService(repo, cache.NewPlaceCache(), geocoder, discardLogger())
}

func TestResolveCoordinates_GeocodesOnce(t *testing.T) {
	repo := newFakePlaceRepo()
	geocoder := &fakeGeocoder{points: map[string]geo.Point{
		testAddress: {Lat: 55.7, Lon: 37.6},
	}}
	svc := newPlaceService(repo, geocoder)

	first, err := svc.ResolveCoordinates(context.Background(), testAddress)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, geo.Point{Lat: 55.7, Lon: 37.6}, *first)

	// повторный вызов обслуживается из кэша, внешний сервис не трогаем
	second, err := svc.ResolveCoordinates(context.Background(), testAddress)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)

	assert.Equal(t, 1, geocoder.calls)
}

func TestResolveCoordinates_ColdCacheReadsFromRepo(t *testing.T) {
	repo := newFakePlaceRepo()
	geocoder := &fakeGeocoder{points: map[string]geo.Point{
		testAddress: {Lat: 55.7, Lon: 37.6},
	}}

	svc := newPlaceService(repo, geocoder)
	_, err := svc.ResolveCoordinates(context.Background(), testAddress)
	require.NoError(t, err)

	// новый экземпляр сервиса с пустым in-memory кэшем, но той же БД:
	// координаты берутся из БД, геокодер не вызывается повторно
	restarted := newPlaceService(repo, geocoder)
	point, err := restarted.ResolveCoordinates(context.Background(), testAddress)
	require.NoError(t, err)
	require.NotNil(t, point)

	assert.Equal(t, 1, geocoder.calls)
}

func TestResolveCoordinates_LookupFailurePersistsNil(t *testing.T) {
	repo := newFakePlaceRepo()
	geocoder := &fakeGeocoder{err: errors.New("connection timed out")}
	svc := newPlaceService(repo, geocoder)

	// сбой геокодера не является ошибкой для вызывающего
	point, err := svc.ResolveCoordinates(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Nil(t, point)

	// неудачная попытка зафиксирована в хранилище с nil-координатами
	place, err := repo.ByAddress(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Nil(t, place.Lat)
	assert.Nil(t, place.Lon)

	// и вторая попытка не долбит внешний сервис
	_, err = svc.ResolveCoordinates(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Equal(t, 1, geocoder.calls)
}

func TestResolveCoordinates_NoResultPersistsNil(t *testing.T) {
	repo := newFakePlaceRepo()
	geocoder := &fakeGeocoder{points: map[string]geo.Point{}} // адрес не найден
	svc := newPlaceService(repo, geocoder)

	point, err := svc.ResolveCoordinates(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Nil(t, point)

	place, err := repo.ByAddress(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Nil(t, place.Lat)

	assert.Equal(t, 1, geocoder.calls)
}

// racePlaceRepo моделирует проигранную гонку за создание записи:
// первый ByAddress промахивается, а Create сообщает, что запись уже есть
type racePlaceRepo struct {
	*fakePlaceRepo
	missFirst bool
}

func (r *racePlaceRepo) ByAddress(ctx context.Context, address string) (model.Place, error) {
	if r.missFirst {
		r.missFirst = false
		return model.Place{}, postgres.ErrPlaceNotFound
	}
	return r.fakePlaceRepo.ByAddress(ctx, address)
}

func TestResolveCoordinates_LostCreateRaceRereadsEntry(t *testing.T) {
	inner := newFakePlaceRepo()

	// запись успел создать и заполнить конкурирующий запрос
	lat, lon := 59.9, 30.3
	require.NoError(t, inner.UpdateCoordinates(context.Background(), model.Place{
		Address: testAddress,
		Lat:     &lat,
		Lon:     &lon,
	}))

	repo := &racePlaceRepo{fakePlaceRepo: inner, missFirst: true}
	geocoder := &fakeGeocoder{}
	svc := newPlaceService(repo, geocoder)

	// конфликт создания — не фатальная ошибка: запись перечитывается
	point, err := svc.ResolveCoordinates(context.Background(), testAddress)
	require.NoError(t, err)
	require.NotNil(t, point)
	assert.Equal(t, geo.Point{Lat: 59.9, Lon: 30.3}, *point)

	// чужую запись не перегеокодируем
	assert.Equal(t, 0, geocoder.calls)
}

func TestRestoreCache(t *testing.T) {
	repo := newFakePlaceRepo()
	lat, lon := 55.7, 37.6
	require.NoError(t, repo.UpdateCoordinates(context.Background(), model.Place{
		Address: testAddress,
		Lat:     &lat,
		Lon:     &lon,
	}))

	geocoder := &fakeGeocoder{}
	placeCache := cache.NewPlaceCache()
	svc := NewPlaceService(repo, placeCache, geocoder, discardLogger())

	require.NoError(t, svc.RestoreCache(context.Background()))

	place, ok := placeCache.Get(testAddress)
	require.True(t, ok)
	assert.Equal(t, testAddress, place.Address)
}
