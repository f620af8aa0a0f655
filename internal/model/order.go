package model

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// OrderStatus — статус заказа
// заказ движется по цепочке: в обработке -> на сборке -> в доставке -> доставлен
type OrderStatus string

const (
	StatusProcessing OrderStatus = "in_processing"
	StatusAssembly   OrderStatus = "on_assembly"
	StatusDelivery   OrderStatus = "in_delivery"
	StatusDelivered  OrderStatus = "delivered"
)

// PaymentMethod — способ оплаты заказа
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// Order представляет полную модель заказа вместе с его позициями
type Order struct {
	ID           int64         `json:"id"`
	Firstname    string        `json:"firstname"`
	Lastname     string        `json:"lastname"`
	Phonenumber  string        `json:"phonenumber"`
	Address      string        `json:"address"`
	Status       OrderStatus   `json:"status"`
	Payment      PaymentMethod `json:"payment"`
	Comment      string        `json:"comment,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	CalledAt     *time.Time    `json:"called_at,omitempty"`
	DeliveredAt  *time.Time    `json:"delivered_at,omitempty"`
	RestaurantID *int64        `json:"restaurant_id,omitempty"`
	Items        []OrderItem   `json:"items"`
}

// OrderItem — одна позиция заказа
// Price — снимок цены товара на момент оформления заказа,
// чтобы последующие изменения каталога не меняли сумму старых заказов
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// TotalAmount возвращает сумму заказа по снимкам цен позиций
func (o Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// OrderItemPayload — одна позиция во входящем заказе
type OrderItemPayload struct {
	ProductID int64 `json:"product" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,min=1,max=500"`
}

// OrderPayload представляет входящий заказ из API или из кафки
// теги validate используются для проверки корректности данных при получении
type OrderPayload struct {
	Products    []OrderItemPayload `json:"products" validate:"required,gt=0,dive"`
	Firstname   string             `json:"firstname" validate:"required"`
	Lastname    string             `json:"lastname" validate:"required"`
	Phonenumber string             `json:"phonenumber" validate:"required,e164"`
	Address     string             `json:"address" validate:"required"`
	Comment     string             `json:"comment"`
	Payment     PaymentMethod      `json:"payment" validate:"omitempty,oneof=cash online"`
}

var validate = validator.New()

// Validate проверяет корректность структуры OrderPayload на основе тегов validate
func (p *OrderPayload) Validate() error {
	return validate.Struct(p)
}
