// Package openfoodfacts — клиент Open Food Facts для поиска продуктов.
// Взаимозаменяем с FoodData Central: выбирается переменной FOOD_PROVIDER.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/errvalues"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Product — найденный продукт с калорийностью на 100 г
type Product struct {
	Name            string
	CaloriesPer100g float64
}

type searchResponse struct {
	Products []struct {
		ProductName string         `json:"product_name"`
		Nutriments  map[string]any `json:"nutriments"`
	} `json:"products"`
}

// SearchFoods ищет продукты по свободному текстовому запросу.
// Калорийность берётся из нутриента "energy-kcal_100g"
func (c *Client) SearchFoods(ctx context.Context, query string) ([]Product, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	reqURL := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=10",
		base, url.QueryEscape(strings.TrimSpace(query)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса к Open Food Facts: %w", err)
	}
	req.Header.Set("User-Agent", "HealthTrackingBot/1.0 (+https://github.com/karinaaa-ed/HealthTrackingBot)")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса к Open Food Facts: %w", errvalues.ErrUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа Open Food Facts: %w", errvalues.ErrUpstream)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("Open Food Facts ответил статусом %d: %w", resp.StatusCode, errvalues.ErrUpstream)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа Open Food Facts: %w", errvalues.ErrUpstream)
	}

	out := make([]Product, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		name := strings.TrimSpace(p.ProductName)
		if name == "" {
			continue
		}
		kcal, _ := parseFloatAny(p.Nutriments["energy-kcal_100g"])
		out = append(out, Product{Name: name, CaloriesPer100g: kcal})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("продукт %q не найден: %w", query, errvalues.ErrNotFound)
	}
	return out, nil
}

// Open Food Facts отдаёт числа нутриентов то числом, то строкой
func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
