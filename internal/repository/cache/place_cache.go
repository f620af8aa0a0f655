package cache

import (
	"sync"

	"github.com/asquebay/star-burger-service/internal/model"
)

// PlaceCache — потокобезопасный in-memory кэш результатов геокодирования
// избавляет дашборд от похода в БД за координатами на каждый рендер
type PlaceCache struct {
	// sync.Map выбрал для обеспечения потокобезопасности
	// Ключ — string (адрес), значение — model.Place
	storage sync.Map
}

// NewPlaceCache создаёт новый экземпляр кэша
func NewPlaceCache() *PlaceCache {
	return &PlaceCache{}
}

// Set добавляет или обновляет место в кэше
func (c *PlaceCache) Set(place model.Place) {
	c.storage.Store(place.Address, place)
}

// Get извлекает место из кэша по адресу
// возвращает место и true, если оно найдено, иначе — пустую структуру и false
func (c *PlaceCache) Get(address string) (model.Place, bool) {
	value, ok := c.storage.Load(address)
	if !ok {
		return model.Place{}, false
	}

	// выполняем безопасное приведение типа
	place, ok := value.(model.Place)
	return place, ok
}

// LoadAll загружает в кэш срез мест
// используется для первоначального заполнения кэша при старте сервиса
func (c *PlaceCache) LoadAll(places []model.Place) {
	for _, place := range places {
		c.Set(place)
	}
}
