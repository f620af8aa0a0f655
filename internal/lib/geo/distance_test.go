package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	moscow := Point{Lat: 55.7558, Lon: 37.6173}
	spb := Point{Lat: 59.9343, Lon: 30.3351}

	// расстояние Москва — Санкт-Петербург по большому кругу около 634 км
	got := Distance(moscow, spb)
	assert.InDelta(t, 634, got, 5)
}

func TestDistance_SamePoint(t *testing.T) {
	p := Point{Lat: 55.7558, Lon: 37.6173}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 1.235, RoundKm(1.23456))
	assert.Equal(t, 0.001, RoundKm(0.0009))
	assert.Equal(t, 12.0, RoundKm(12.0000001))
}
