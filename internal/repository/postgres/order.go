package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/asquebay/star-burger-service/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository инкапсулирует логику работы с заказами в БД
type OrderRepository struct {
	db *pgxpool.Pool
	sq squirrel.StatementBuilderType
}

// NewOrderRepository создает новый экземпляр репозитория
func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{
		db: db,
		// использую плейсхолдеры в стиле PostgreSQL ($1, $2, $3,...)
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateOrder сохраняет заказ вместе со всеми позициями в рамках одной транзакции
// либо сохраняется всё, либо ничего: частичный заказ без позиций
// не должен быть виден читателям ни при каком сбое
func (r *OrderRepository) CreateOrder(ctx context.Context, order model.Order) (int64, error) {
	const op = "repository.postgres.order.CreateOrder"

	// начинаем транзакцию
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	// гарантируем откат транзакции в случае любой ошибки
	defer tx.Rollback(ctx)

	// 1. Вставка в таблицу orders
	sql, args, err := r.sq.Insert("orders").
		Columns("firstname", "lastname", "phonenumber", "address", "status", "payment", "comment", "created_at").
		Values(
			order.Firstname, order.Lastname, order.Phonenumber, order.Address,
			order.Status, order.Payment, order.Comment, order.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build orders insert query: %w", op, err)
	}

	var orderID int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&orderID); err != nil {
		return 0, fmt.Errorf("%s: failed to insert into orders: %w", op, err)
	}

	// 2. Вставка позиций заказа (в цикле)
	for _, item := range order.Items {
		sql, args, err = r.sq.Insert("order_items").
			Columns("order_id", "product_id", "quantity", "price").
			Values(orderID, item.ProductID, item.Quantity, item.Price).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("%s: failed to build item insert query for product %d: %w", op, item.ProductID, err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return 0, fmt.Errorf("%s: failed to insert item with product %d: %w", op, item.ProductID, err)
		}
	}

	// если все прошло успешно, подтверждаем транзакцию
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return orderID, nil
}

// ActiveOrders извлекает все недоставленные заказы вместе с позициями
// используется дашбордом менеджера, поэтому заказы идут от новых к старым
func (r *OrderRepository) ActiveOrders(ctx context.Context) ([]model.Order, error) {
	const op = "repository.postgres.order.ActiveOrders"

	// 1. Получаем основные данные заказов
	query := `
		SELECT id, firstname, lastname, phonenumber, address, status, payment,
		       comment, created_at, called_at, delivered_at, restaurant_id
		FROM orders
		WHERE status <> 'delivered'
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query orders: %w", op, err)
	}
	defer rows.Close()

	ordersMap := make(map[int64]*model.Order)
	orderIDs := []int64{}

	for rows.Next() {
		var o model.Order
		err := rows.Scan(
			&o.ID, &o.Firstname, &o.Lastname, &o.Phonenumber, &o.Address, &o.Status, &o.Payment,
			&o.Comment, &o.CreatedAt, &o.CalledAt, &o.DeliveredAt, &o.RestaurantID,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan order row: %w", op, err)
		}
		ordersMap[o.ID] = &o
		orderIDs = append(orderIDs, o.ID)
	}

	if len(orderIDs) == 0 {
		return []model.Order{}, nil // нет активных заказов — возвращаем пустой слайс
	}

	// 2. Получаем все позиции для найденных заказов одним запросом
	itemsQuery := `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
	`
	itemRows, err := r.db.Query(ctx, itemsQuery, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query order items: %w", op, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item model.OrderItem
		err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan item row: %w", op, err)
		}

		if order, ok := ordersMap[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	// 3. Собираем результат, сохраняя порядок выборки
	result := make([]model.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		result = append(result, *ordersMap[id])
	}

	return result, nil
}

// OrderByID извлекает один заказ из базы данных по его ID
func (r *OrderRepository) OrderByID(ctx context.Context, id int64) (model.Order, error) {
	const op = "repository.postgres.order.OrderByID"

	query := `
		SELECT id, firstname, lastname, phonenumber, address, status, payment,
		       comment, created_at, called_at, delivered_at, restaurant_id
		FROM orders
		WHERE id = $1
	`
	var order model.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.Firstname, &order.Lastname, &order.Phonenumber, &order.Address,
		&order.Status, &order.Payment, &order.Comment, &order.CreatedAt,
		&order.CalledAt, &order.DeliveredAt, &order.RestaurantID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, fmt.Errorf("%s: %w", op, ErrOrderNotFound)
		}
		return model.Order{}, fmt.Errorf("%s: failed to query order: %w", op, err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = $1
	`
	rows, err := r.db.Query(ctx, itemsQuery, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("%s: failed to query order items: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return model.Order{}, fmt.Errorf("%s: failed to scan item row: %w", op, err)
		}
		order.Items = append(order.Items, item)
	}

	return order, nil
}
