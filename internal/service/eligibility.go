package service

import (
	"sort"

	"github.com/asquebay/star-burger-service/internal/model"
)

// EligibleRestaurants вычисляет рестораны, способные приготовить заказ целиком:
// пересечение множеств ресторанов, у которых каждый товар заказа есть в продаже
//
// заказ без позиций даёт пустой результат: пересечение по пустому списку
// множеств математически дало бы "все рестораны", поэтому этот случай
// обрабатывается отдельно
// результат отсортирован по ID для детерминированности
func EligibleRestaurants(items []model.OrderItem, menu []model.RestaurantMenuItem) []model.Restaurant {
	if len(items) == 0 {
		return []model.Restaurant{}
	}

	// рестораны по товарам: product_id -> (restaurant_id -> Restaurant)
	byProduct := make(map[int64]map[int64]model.Restaurant)
	for _, menuItem := range menu {
		if !menuItem.Availability {
			continue
		}
		restaurants, ok := byProduct[menuItem.ProductID]
		if !ok {
			restaurants = make(map[int64]model.Restaurant)
			byProduct[menuItem.ProductID] = restaurants
		}
		restaurants[menuItem.Restaurant.ID] = menuItem.Restaurant
	}

	// пересекаем множества ресторанов по всем позициям заказа
	// товар, которого нет ни в одном ресторане, обнуляет результат
	var eligible map[int64]model.Restaurant
	for i, item := range items {
		productRestaurants := byProduct[item.ProductID]
		if i == 0 {
			eligible = make(map[int64]model.Restaurant, len(productRestaurants))
			for id, rest := range productRestaurants {
				eligible[id] = rest
			}
			continue
		}
		for id := range eligible {
			if _, ok := productRestaurants[id]; !ok {
				delete(eligible, id)
			}
		}
		if len(eligible) == 0 {
			break
		}
	}

	result := make([]model.Restaurant, 0, len(eligible))
	for _, rest := range eligible {
		result = append(result, rest)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result
}
