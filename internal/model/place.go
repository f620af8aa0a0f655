package model

import (
	"time"

	"github.com/asquebay/star-burger-service/internal/lib/geo"
)

// Place — запись кэша геокодирования
// ключом служит адрес как есть (точное строковое совпадение)
// nil-координаты означают, что попытка геокодирования была,
// но координаты получить не удалось
type Place struct {
	Address   string    `json:"address"`
	Lat       *float64  `json:"lat"`
	Lon       *float64  `json:"lon"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Coordinates возвращает координаты места, если они известны
func (p Place) Coordinates() (geo.Point, bool) {
	if p.Lat == nil || p.Lon == nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *p.Lat, Lon: *p.Lon}, true
}
