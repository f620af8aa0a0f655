package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asquebay/star-burger-service/internal/model"
)

// CatalogService отдаёт данные каталога для экранов менеджера
type CatalogService struct {
	catalog CatalogRepository
	log     *slog.Logger
}

// NewCatalogService создаёт новый экземпляр сервиса каталога
func NewCatalogService(catalog CatalogRepository, log *slog.Logger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		log:     log,
	}
}

// Restaurants возвращает список всех ресторанов
func (s *CatalogService) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	const op = "service.CatalogService.Restaurants"

	restaurants, err := s.catalog.Restaurants(ctx)
	if err != nil {
		s.log.Error("failed to load restaurants", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return restaurants, nil
}

// ProductsWithAvailability возвращает товары с их наличием по ресторанам
func (s *CatalogService) ProductsWithAvailability(ctx context.Context) ([]model.ProductAvailability, error) {
	const op = "service.CatalogService.ProductsWithAvailability"

	products, err := s.catalog.ProductsWithAvailability(ctx)
	if err != nil {
		s.log.Error("failed to load products", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}
