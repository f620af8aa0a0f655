package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asquebay/star-burger-service/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.Geocoder{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: time.Second,
	})
}

func TestGeocode_SwapsLonLat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// проверяем параметры запроса к провайдеру
		assert.Equal(t, "Москва, Красная площадь", r.URL.Query().Get("geocode"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		// pos в ответе — "долгота широта"
		w.Write([]byte(`{"response":{"GeoObjectCollection":{"featureMember":[
			{"GeoObject":{"Point":{"pos":"37.617698 55.755864"}}},
			{"GeoObject":{"Point":{"pos":"0 0"}}}
		]}}}`))
	})

	point, found, err := client.Geocode(context.Background(), "Москва, Красная площадь")
	require.NoError(t, err)
	require.True(t, found)

	// берётся первый кандидат, долгота и широта меняются местами
	assert.Equal(t, 55.755864, point.Lat)
	assert.Equal(t, 37.617698, point.Lon)
}

func TestGeocode_NoResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"GeoObjectCollection":{"featureMember":[]}}}`))
	})

	_, found, err := client.Geocode(context.Background(), "несуществующий адрес")

	// пустой список кандидатов — легитимный результат, а не ошибка
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGeocode_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, _, err := client.Geocode(context.Background(), "Москва")
	assert.Error(t, err)
}

func TestGeocode_MalformedPos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"GeoObjectCollection":{"featureMember":[
			{"GeoObject":{"Point":{"pos":"not-a-number"}}}
		]}}}`))
	})

	_, _, err := client.Geocode(context.Background(), "Москва")
	assert.Error(t, err)
}
