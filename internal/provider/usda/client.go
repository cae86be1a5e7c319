// Package usda — клиент USDA FoodData Central для поиска продуктов.
package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/errvalues"
)

const defaultBaseURL = "https://api.nal.usda.gov"

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Food — найденный продукт с калорийностью на 100 г
type Food struct {
	Description     string
	CaloriesPer100g float64
}

type searchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// SearchFoods ищет продукты по свободному текстовому запросу.
// Калорийность берётся из нутриента с именем "Energy"
func (c *Client) SearchFoods(ctx context.Context, query string) ([]Food, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("не задан API-ключ FoodData Central")
	}
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("api_key", c.APIKey)

	reqURL := fmt.Sprintf("%s/fdc/v1/foods/search?%s", base, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса к FoodData Central: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса к FoodData Central: %w", errvalues.ErrUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа FoodData Central: %w", errvalues.ErrUpstream)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("FoodData Central ответил статусом %d: %w", resp.StatusCode, errvalues.ErrUpstream)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа FoodData Central: %w", errvalues.ErrUpstream)
	}
	if len(parsed.Foods) == 0 {
		return nil, fmt.Errorf("продукт %q не найден: %w", query, errvalues.ErrNotFound)
	}

	out := make([]Food, 0, len(parsed.Foods))
	for _, f := range parsed.Foods {
		food := Food{Description: strings.TrimSpace(f.Description)}
		for _, n := range f.FoodNutrients {
			if n.NutrientName == "Energy" {
				food.CaloriesPer100g = n.Value
				break
			}
		}
		out = append(out, food)
	}
	return out, nil
}
