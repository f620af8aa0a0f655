package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/asquebay/star-burger-service/internal/lib/geo"
	"github.com/asquebay/star-burger-service/internal/model"
)

// ErrProductUnavailable возвращается, когда товар из заказа
// сейчас нельзя приготовить ни в одном ресторане
var ErrProductUnavailable = errors.New("product is not available in any restaurant")

// OrderService инкапсулирует бизнес-логику работы с заказами
type OrderService struct {
	orders  OrderRepository
	catalog CatalogRepository
	places  PlaceResolver
	log     *slog.Logger
}

// NewOrderService создаёт новый экземпляр сервиса заказов
// он принимает интерфейсы, а не конкретные типы, для гибкости и тестируемости
func NewOrderService(orders OrderRepository, catalog CatalogRepository, places PlaceResolver, log *slog.Logger) *OrderService {
	return &OrderService{
		orders:  orders,
		catalog: catalog,
		places:  places,
		log:     log,
	}
}

// CreateOrder обрабатывает создание нового заказа из входящего payload
// проверяет данные, снимает актуальные цены товаров и атомарно сохраняет
// заказ вместе с позициями
func (s *OrderService) CreateOrder(ctx context.Context, payload model.OrderPayload) (model.Order, error) {
	const op = "service.OrderService.CreateOrder"
	log := s.log.With(slog.String("op", op))

	// 1. Валидация полей payload (количество 1..500, непустой список позиций и т.д.)
	if err := payload.Validate(); err != nil {
		return model.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	// 2. Каждый товар заказа должен быть в продаже хотя бы в одном ресторане
	availableIDs, err := s.catalog.AvailableProductIDs(ctx)
	if err != nil {
		log.Error("failed to load available products", slog.String("error", err.Error()))
		return model.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	productIDs := make([]int64, 0, len(payload.Products))
	for _, item := range payload.Products {
		if _, ok := availableIDs[item.ProductID]; !ok {
			return model.Order{}, fmt.Errorf("%s: product %d: %w", op, item.ProductID, ErrProductUnavailable)
		}
		productIDs = append(productIDs, item.ProductID)
	}

	// 3. Снимаем актуальные цены: дальнейшие изменения каталога
	// не должны менять сумму уже оформленного заказа
	products, err := s.catalog.ProductsByIDs(ctx, productIDs)
	if err != nil {
		log.Error("failed to load products", slog.String("error", err.Error()))
		return model.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	payment := payload.Payment
	if payment == "" {
		payment = model.PaymentCash
	}

	order := model.Order{
		Firstname:   payload.Firstname,
		Lastname:    payload.Lastname,
		Phonenumber: payload.Phonenumber,
		Address:     payload.Address,
		Status:      model.StatusProcessing,
		Payment:     payment,
		Comment:     payload.Comment,
		CreatedAt:   time.Now(),
	}

	for _, item := range payload.Products {
		product, ok := products[item.ProductID]
		if !ok {
			return model.Order{}, fmt.Errorf("%s: product %d: %w", op, item.ProductID, ErrProductUnavailable)
		}
		order.Items = append(order.Items, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	// 4. Сохраняем в БД: заказ и позиции пишутся одной транзакцией
	id, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		log.Error("failed to save order to repository", slog.String("error", err.Error()))
		return model.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	order.ID = id

	log.Info("order created", slog.Int64("order_id", id), slog.Int("items_count", len(order.Items)))
	return order, nil
}

// OrderByID получает заказ по его ID
func (s *OrderService) OrderByID(ctx context.Context, id int64) (model.Order, error) {
	const op = "service.OrderService.OrderByID"

	order, err := s.orders.OrderByID(ctx, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

// Dashboard собирает ленту для менеджера: активные заказы с суммой
// и списком ресторанов, способных приготовить заказ, с расстоянием
// до адреса доставки
func (s *OrderService) Dashboard(ctx context.Context) ([]model.DashboardOrder, error) {
	const op = "service.OrderService.Dashboard"
	log := s.log.With(slog.String("op", op))

	orders, err := s.orders.ActiveOrders(ctx)
	if err != nil {
		log.Error("failed to load active orders", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	menu, err := s.catalog.AvailableMenuItems(ctx)
	if err != nil {
		log.Error("failed to load menu items", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]model.DashboardOrder, 0, len(orders))
	for _, order := range orders {
		eligible := EligibleRestaurants(order.Items, menu)

		result = append(result, model.DashboardOrder{
			Order:                order,
			TotalAmount:          order.TotalAmount(),
			AvailableRestaurants: s.annotateRestaurants(ctx, order.Address, eligible),
		})
	}

	return result, nil
}

// annotateRestaurants превращает рестораны в строки для дашборда:
// название плюс расстояние до адреса доставки
// сортировка по возрастанию расстояния, рестораны с неизвестным
// расстоянием идут последними с сохранением исходного порядка
func (s *OrderService) annotateRestaurants(ctx context.Context, orderAddress string, restaurants []model.Restaurant) []model.RestaurantOption {
	orderPoint := s.resolveQuiet(ctx, orderAddress)

	options := make([]model.RestaurantOption, 0, len(restaurants))
	for _, rest := range restaurants {
		option := model.RestaurantOption{
			ID:      rest.ID,
			Name:    rest.Name,
			Address: rest.Address,
		}

		if orderPoint != nil {
			if restPoint := s.resolveQuiet(ctx, rest.Address); restPoint != nil {
				km := geo.RoundKm(geo.Distance(*orderPoint, *restPoint))
				option.DistanceKm = &km
			}
		}

		if option.DistanceKm != nil {
			option.Label = fmt.Sprintf("%s - %.3f км", rest.Name, *option.DistanceKm)
		} else {
			option.Label = fmt.Sprintf("%s - расстояние неизвестно", rest.Name)
		}

		options = append(options, option)
	}

	sort.SliceStable(options, func(i, j int) bool {
		a, b := options[i].DistanceKm, options[j].DistanceKm
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})

	return options
}

// resolveQuiet резолвит координаты, глуша ошибки хранилища:
// никакая ошибка на пути геокодирования не должна ломать рендер списка заказов
func (s *OrderService) resolveQuiet(ctx context.Context, address string) *geo.Point {
	point, err := s.places.ResolveCoordinates(ctx, address)
	if err != nil {
		s.log.Error("failed to resolve coordinates",
			slog.String("address", address),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return point
}
