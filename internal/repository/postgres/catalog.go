package postgres

import (
	"context"
	"fmt"

	"github.com/asquebay/star-burger-service/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository читает каталог: рестораны, товары и пункты меню
// каталог ведётся админкой, этот репозиторий его только читает
type CatalogRepository struct {
	db *pgxpool.Pool
	sq squirrel.StatementBuilderType
}

// NewCatalogRepository создает новый экземпляр репозитория каталога
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Restaurants возвращает все рестораны, отсортированные по названию
func (r *CatalogRepository) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	const op = "repository.postgres.catalog.Restaurants"

	query := `
		SELECT id, name, address, contact_phone
		FROM restaurants
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query restaurants: %w", op, err)
	}
	defer rows.Close()

	restaurants := []model.Restaurant{}
	for rows.Next() {
		var rest model.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.ContactPhone); err != nil {
			return nil, fmt.Errorf("%s: failed to scan restaurant row: %w", op, err)
		}
		restaurants = append(restaurants, rest)
	}

	return restaurants, nil
}

// AvailableMenuItems возвращает пункты меню с availability = true
// вместе с данными ресторанов — ровно то, что нужно для подбора
// ресторанов под заказ
func (r *CatalogRepository) AvailableMenuItems(ctx context.Context) ([]model.RestaurantMenuItem, error) {
	const op = "repository.postgres.catalog.AvailableMenuItems"

	query := `
		SELECT m.product_id, m.availability, r.id, r.name, r.address, r.contact_phone
		FROM restaurant_menu_items m
		JOIN restaurants r ON r.id = m.restaurant_id
		WHERE m.availability = true
		ORDER BY r.id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query menu items: %w", op, err)
	}
	defer rows.Close()

	items := []model.RestaurantMenuItem{}
	for rows.Next() {
		var item model.RestaurantMenuItem
		err := rows.Scan(
			&item.ProductID, &item.Availability,
			&item.Restaurant.ID, &item.Restaurant.Name, &item.Restaurant.Address, &item.Restaurant.ContactPhone,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan menu item row: %w", op, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// AvailableProductIDs возвращает множество товаров, которые сейчас
// есть в продаже хотя бы в одном ресторане
// используется при валидации входящего заказа
func (r *CatalogRepository) AvailableProductIDs(ctx context.Context) (map[int64]struct{}, error) {
	const op = "repository.postgres.catalog.AvailableProductIDs"

	query := `
		SELECT DISTINCT product_id
		FROM restaurant_menu_items
		WHERE availability = true
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query available products: %w", op, err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: failed to scan product id: %w", op, err)
		}
		ids[id] = struct{}{}
	}

	return ids, nil
}

// ProductsByIDs возвращает товары по списку идентификаторов
// нужен сервису заказов для снимка актуальных цен
func (r *CatalogRepository) ProductsByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	const op = "repository.postgres.catalog.ProductsByIDs"

	sql, args, err := r.sq.Select("id", "name", "category_id", "price", "description", "special_status").
		From("products").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query products: %w", op, err)
	}
	defer rows.Close()

	products := make(map[int64]model.Product, len(ids))
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.Description, &p.SpecialStatus)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan product row: %w", op, err)
		}
		products[p.ID] = p
	}

	return products, nil
}

// ProductsWithAvailability возвращает все товары и их наличие по ресторанам
// используется на экране менеджера со списком товаров
func (r *CatalogRepository) ProductsWithAvailability(ctx context.Context) ([]model.ProductAvailability, error) {
	const op = "repository.postgres.catalog.ProductsWithAvailability"

	query := `
		SELECT id, name, category_id, price, description, special_status
		FROM products
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query products: %w", op, err)
	}
	defer rows.Close()

	result := []model.ProductAvailability{}
	index := make(map[int64]int)

	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.Description, &p.SpecialStatus)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan product row: %w", op, err)
		}
		index[p.ID] = len(result)
		result = append(result, model.ProductAvailability{
			Product:      p,
			Availability: make(map[int64]bool),
		})
	}

	menuQuery := `
		SELECT restaurant_id, product_id, availability
		FROM restaurant_menu_items
	`
	menuRows, err := r.db.Query(ctx, menuQuery)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query menu items: %w", op, err)
	}
	defer menuRows.Close()

	for menuRows.Next() {
		var restaurantID, productID int64
		var availability bool
		if err := menuRows.Scan(&restaurantID, &productID, &availability); err != nil {
			return nil, fmt.Errorf("%s: failed to scan menu item row: %w", op, err)
		}
		if i, ok := index[productID]; ok {
			result[i].Availability[restaurantID] = availability
		}
	}

	return result, nil
}
