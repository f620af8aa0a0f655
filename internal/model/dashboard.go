package model

import "github.com/shopspring/decimal"

// RestaurantOption — ресторан, способный приготовить заказ,
// с расстоянием до адреса доставки
// DistanceKm равен nil, если адрес не удалось геокодировать
type RestaurantOption struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Label      string   `json:"label"`
}

// DashboardOrder — заказ в том виде, в котором его видит менеджер:
// с итоговой суммой и списком подходящих ресторанов
type DashboardOrder struct {
	Order
	TotalAmount          decimal.Decimal    `json:"total_amount"`
	AvailableRestaurants []RestaurantOption `json:"available_restaurants"`
}
