package geo

import "math"

// радиус Земли в километрах
const earthRadiusKm = 6371.0

// Point — географическая точка (широта и долгота в градусах)
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance вычисляет расстояние между двумя точками по формуле гаверсинусов
// результат — длина дуги большого круга в километрах
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// RoundKm округляет расстояние до трёх знаков после запятой для показа менеджеру
func RoundKm(km float64) float64 {
	return math.Round(km*1000) / 1000
}
