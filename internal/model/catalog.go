package model

import "github.com/shopspring/decimal"

// Restaurant представляет ресторан сети
type Restaurant struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// ProductCategory — категория товара (необязательная для товара)
type ProductCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product представляет товар из каталога
// цена хранится как decimal, чтобы не терять копейки на float64
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	CategoryID    *int64          `json:"category_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Description   string          `json:"description,omitempty"`
	SpecialStatus bool            `json:"special_status"`
}

// RestaurantMenuItem — пункт меню: связка ресторана и товара с флагом наличия
// на пару (ресторан, товар) существует не более одной записи
type RestaurantMenuItem struct {
	Restaurant   Restaurant `json:"restaurant"`
	ProductID    int64      `json:"product_id"`
	Availability bool       `json:"availability"`
}

// ProductAvailability — товар вместе с его наличием по ресторанам,
// используется на экране менеджера со списком товаров
type ProductAvailability struct {
	Product      Product        `json:"product"`
	Availability map[int64]bool `json:"availability"`
}
