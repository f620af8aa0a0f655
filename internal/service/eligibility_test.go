package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/asquebay/star-burger-service/internal/model"
)

func menuItem(rest model.Restaurant, productID int64, available bool) model.RestaurantMenuItem {
	return model.RestaurantMenuItem{
		Restaurant:   rest,
		ProductID:    productID,
		Availability: available,
	}
}

func TestEligibleRestaurants(t *testing.T) {
	restA := model.Restaurant{ID: 1, Name: "Star Burger Арбат", Address: "Москва, Арбат, 1"}
	restB := model.Restaurant{ID: 2, Name: "Star Burger Тверская", Address: "Москва, Тверская, 7"}

	const (
		pizza = int64(10)
		cola  = int64(20)
		soup  = int64(30)
	)

	// A готовит пиццу и колу, B — только пиццу
	menu := []model.RestaurantMenuItem{
		menuItem(restA, pizza, true),
		menuItem(restA, cola, true),
		menuItem(restB, pizza, true),
	}

	tests := []struct {
		name  string
		items []model.OrderItem
		menu  []model.RestaurantMenuItem
		want  []model.Restaurant
	}{
		{
			name: "заказ из пиццы и колы готовит только A",
			items: []model.OrderItem{
				{ProductID: pizza, Quantity: 1},
				{ProductID: cola, Quantity: 2},
			},
			menu: menu,
			want: []model.Restaurant{restA},
		},
		{
			name:  "заказ из одной пиццы готовят оба",
			items: []model.OrderItem{{ProductID: pizza, Quantity: 1}},
			menu:  menu,
			want:  []model.Restaurant{restA, restB},
		},
		{
			// пересечение по пустому списку множеств математически дало бы
			// "все рестораны" — этот случай обязан давать пустой результат
			name:  "заказ без позиций даёт пустой результат, а не все рестораны",
			items: []model.OrderItem{},
			menu:  menu,
			want:  []model.Restaurant{},
		},
		{
			name: "товар без ресторанов обнуляет пересечение",
			items: []model.OrderItem{
				{ProductID: pizza, Quantity: 1},
				{ProductID: soup, Quantity: 1},
			},
			menu: menu,
			want: []model.Restaurant{},
		},
		{
			name:  "пункт меню с availability=false не считается",
			items: []model.OrderItem{{ProductID: cola, Quantity: 1}},
			menu: []model.RestaurantMenuItem{
				menuItem(restA, cola, true),
				menuItem(restB, cola, false),
			},
			want: []model.Restaurant{restA},
		},
		{
			name: "дубль товара в заказе не меняет результат",
			items: []model.OrderItem{
				{ProductID: pizza, Quantity: 1},
				{ProductID: pizza, Quantity: 3},
			},
			menu: menu,
			want: []model.Restaurant{restA, restB},
		},
		{
			name:  "пустое меню даёт пустой результат",
			items: []model.OrderItem{{ProductID: pizza, Quantity: 1}},
			menu:  []model.RestaurantMenuItem{},
			want:  []model.Restaurant{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EligibleRestaurants(tc.items, tc.menu)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("EligibleRestaurants() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
