package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/asquebay/star-burger-service/internal/config"
	"github.com/asquebay/star-burger-service/internal/lib/geo"
)

const defaultBaseURL = "https://geocode-maps.yandex.ru/1.x"

// Client — клиент геокодера Яндекса
// ключ API и базовый URL приходят из конфига, таймаут ограничивает
// время одного запроса, чтобы дашборд не зависал на внешнем сервисе
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New создаёт новый клиент геокодера
func New(cfg config.Geocoder) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// структура ответа геокодера
// нас интересует только pos первого (самого релевантного) кандидата
type geocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Geocode запрашивает у внешнего сервиса координаты адреса
// возвращает found=false, если геокодер не нашёл ни одного кандидата —
// это легитимный результат, а не ошибка
// ошибка возвращается только при сетевых/HTTP-сбоях и кривом ответе
func (c *Client) Geocode(ctx context.Context, address string) (geo.Point, bool, error) {
	const op = "geocoder.Client.Geocode"

	params := url.Values{}
	params.Set("geocode", address)
	params.Set("apikey", c.apiKey)
	params.Set("format", "json")

	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return geo.Point{}, false, fmt.Errorf("%s: failed to build request: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Point{}, false, fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Point{}, false, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return geo.Point{}, false, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	members := decoded.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		// адрес не найден — это не ошибка
		return geo.Point{}, false, nil
	}

	// берём первого кандидата: геокодер сортирует их по релевантности
	pos := members[0].GeoObject.Point.Pos

	// pos приходит в формате "долгота широта", меняем местами при разборе
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return geo.Point{}, false, fmt.Errorf("%s: malformed pos %q", op, pos)
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return geo.Point{}, false, fmt.Errorf("%s: malformed longitude %q: %w", op, parts[0], err)
	}

	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return geo.Point{}, false, fmt.Errorf("%s: malformed latitude %q: %w", op, parts[1], err)
	}

	return geo.Point{Lat: lat, Lon: lon}, true, nil
}
