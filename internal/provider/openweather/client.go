// Package openweather — клиент OpenWeatherMap для получения текущей температуры.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/errvalues"
)

const defaultBaseURL = "https://api.openweathermap.org"

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

type weatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// CurrentTemperature возвращает текущую температуру в городе в °C
func (c *Client) CurrentTemperature(ctx context.Context, city string) (float64, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.APIKey)
	params.Set("units", "metric")

	reqURL := fmt.Sprintf("%s/data/2.5/weather?%s", base, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания запроса погоды: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ошибка запроса погоды: %w", errvalues.ErrUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения ответа погоды: %w", errvalues.ErrUpstream)
	}
	// OpenWeatherMap отвечает 404 на неизвестный город
	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("город %q не распознан: %w", city, errvalues.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("погодный сервис ответил статусом %d: %w", resp.StatusCode, errvalues.ErrUpstream)
	}

	var parsed weatherResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("ошибка разбора ответа погоды: %w", errvalues.ErrUpstream)
	}
	return parsed.Main.Temp, nil
}
