package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asquebay/star-burger-service/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrPlaceNotFound = errors.New("place not found")

// PlaceRepository — постоянное хранилище результатов геокодирования
// адрес является уникальным ключом, записи из этого кода никогда не удаляются
type PlaceRepository struct {
	db *pgxpool.Pool
	sq squirrel.StatementBuilderType
}

// NewPlaceRepository создает новый экземпляр репозитория мест
func NewPlaceRepository(db *pgxpool.Pool) *PlaceRepository {
	return &PlaceRepository{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ByAddress извлекает запись кэша по адресу
func (r *PlaceRepository) ByAddress(ctx context.Context, address string) (model.Place, error) {
	const op = "repository.postgres.place.ByAddress"

	query := `
		SELECT address, lat, lon, updated_at
		FROM places
		WHERE address = $1
	`
	var place model.Place
	err := r.db.QueryRow(ctx, query, address).Scan(&place.Address, &place.Lat, &place.Lon, &place.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Place{}, fmt.Errorf("%s: %w", op, ErrPlaceNotFound)
		}
		return model.Place{}, fmt.Errorf("%s: failed to query place: %w", op, err)
	}

	return place, nil
}

// Create создаёт пустую запись для адреса
// возвращает created=false, если запись уже существует: два конкурентных
// запроса могут одновременно резолвить один и тот же новый адрес,
// уникальность обеспечивает ON CONFLICT по ключу address
func (r *PlaceRepository) Create(ctx context.Context, address string) (bool, error) {
	const op = "repository.postgres.place.Create"

	sql, args, err := r.sq.Insert("places").
		Columns("address", "updated_at").
		Values(address, time.Now()).
		Suffix("ON CONFLICT (address) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("%s: failed to insert place: %w", op, err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpdateCoordinates сохраняет результат геокодирования
// nil-координаты тоже сохраняются: это фиксирует неудачную попытку,
// чтобы не долбить внешний сервис этим же адресом на каждом рендере
func (r *PlaceRepository) UpdateCoordinates(ctx context.Context, place model.Place) error {
	const op = "repository.postgres.place.UpdateCoordinates"

	sql, args, err := r.sq.Update("places").
		Set("lat", place.Lat).
		Set("lon", place.Lon).
		Set("updated_at", place.UpdatedAt).
		Where(squirrel.Eq{"address": place.Address}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("%s: failed to update place: %w", op, err)
	}

	return nil
}

// All извлекает все записи кэша
// используется для восстановления in-memory кэша при старте сервиса
func (r *PlaceRepository) All(ctx context.Context) ([]model.Place, error) {
	const op = "repository.postgres.place.All"

	query := `
		SELECT address, lat, lon, updated_at
		FROM places
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query places: %w", op, err)
	}
	defer rows.Close()

	places := []model.Place{}
	for rows.Next() {
		var place model.Place
		if err := rows.Scan(&place.Address, &place.Lat, &place.Lon, &place.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan place row: %w", op, err)
		}
		places = append(places, place)
	}

	return places, nil
}
