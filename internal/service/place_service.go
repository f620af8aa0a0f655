package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/asquebay/star-burger-service/internal/lib/geo"
	"github.com/asquebay/star-burger-service/internal/model"
	"github.com/asquebay/star-burger-service/internal/repository/postgres"
)

// PlaceService отвечает на вопрос "где находится этот адрес"
// порядок поиска: in-memory кэш -> БД -> внешний геокодер
//
// политика ретраев: геокодер вызывается ровно один раз — в момент,
// когда запись для адреса создаётся впервые. Неудачный результат
// (nil-координаты) тоже сохраняется и дальше отдаётся из кэша,
// повторных попыток нет, пока запись не удалят из БД руками.
// UpdatedAt хранится, чтобы внешний джоб мог находить протухшие записи
type PlaceService struct {
	repo     PlaceRepository
	cache    PlaceCache
	geocoder Geocoder
	log      *slog.Logger
}

// NewPlaceService создаёт новый экземпляр сервиса мест
func NewPlaceService(repo PlaceRepository, cache PlaceCache, geocoder Geocoder, log *slog.Logger) *PlaceService {
	return &PlaceService{
		repo:     repo,
		cache:    cache,
		geocoder: geocoder,
		log:      log,
	}
}

// ResolveCoordinates возвращает координаты адреса или nil, если адрес
// не удалось геокодировать
// ошибка возвращается только при сбоях хранилища: сбой геокодера
// логируется и превращается в nil-координаты, чтобы один плохой адрес
// не ломал рендер всего списка заказов
func (s *PlaceService) ResolveCoordinates(ctx context.Context, address string) (*geo.Point, error) {
	const op = "service.PlaceService.ResolveCoordinates"
	log := s.log.With(slog.String("op", op), slog.String("address", address))

	// 1. Пытаемся получить из кэша для максимальной скорости
	if place, ok := s.cache.Get(address); ok {
		return pointOf(place), nil
	}

	// 2. Если в кэше нет, идем в БД
	place, err := s.repo.ByAddress(ctx, address)
	if err == nil {
		s.cache.Set(place)
		return pointOf(place), nil
	}
	if !errors.Is(err, postgres.ErrPlaceNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// 3. Адрес видим впервые — создаём запись
	created, err := s.repo.Create(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// проигрыш гонки за создание — не ошибка: запись уже есть, перечитываем её
	if !created {
		place, err := s.repo.ByAddress(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.cache.Set(place)
		return pointOf(place), nil
	}

	// 4. Запись создали мы — значит, нам и делать единственную попытку геокодирования
	place = model.Place{Address: address, UpdatedAt: time.Now()}

	point, found, err := s.geocoder.Geocode(ctx, address)
	switch {
	case err != nil:
		// сетевой сбой геокодера деградирует до "координаты неизвестны"
		log.Warn("geocoder lookup failed", slog.String("error", err.Error()))
	case !found:
		log.Info("geocoder returned no results")
	default:
		place.Lat = &point.Lat
		place.Lon = &point.Lon
	}

	// сохраняем результат, включая неудачный
	if err := s.repo.UpdateCoordinates(ctx, place); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Set(place)
	return pointOf(place), nil
}

// RestoreCache восстанавливает in-memory кэш мест из базы данных при старте
func (s *PlaceService) RestoreCache(ctx context.Context) error {
	const op = "service.PlaceService.RestoreCache"
	log := s.log.With(slog.String("op", op))

	places, err := s.repo.All(ctx)
	if err != nil {
		log.Error("failed to get places from repository", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.LoadAll(places)

	log.Info("place cache restored", slog.Int("places_count", len(places)))
	return nil
}

func pointOf(place model.Place) *geo.Point {
	if point, ok := place.Coordinates(); ok {
		return &point
	}
	return nil
}
