// Package nutritionix — клиент Nutritionix Natural Exercise API
// для оценки сожжённых калорий по текстовому описанию тренировки.
package nutritionix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/errvalues"
)

const defaultBaseURL = "https://trackapi.nutritionix.com"

type Client struct {
	AppID      string
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// ExerciseRequest — контекст запроса: фраза плюс данные профиля
type ExerciseRequest struct {
	Query    string
	Gender   string
	WeightKg int
	HeightCm int
	Age      int
}

// Exercise — распознанная тренировка с оценкой сожжённых калорий
type Exercise struct {
	Name     string
	Calories float64
}

type exerciseResponse struct {
	Exercises []struct {
		Name       string  `json:"name"`
		NFCalories float64 `json:"nf_calories"`
	} `json:"exercises"`
}

// NaturalExercise распознаёт тренировки во фразе и оценивает сожжённые калории
func (c *Client) NaturalExercise(ctx context.Context, in ExerciseRequest) ([]Exercise, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	payload, err := json.Marshal(map[string]any{
		"query":     in.Query,
		"gender":    in.Gender,
		"weight_kg": in.WeightKg,
		"height_cm": in.HeightCm,
		"age":       in.Age,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса к Nutritionix: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/v2/natural/exercise", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса к Nutritionix: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", c.AppID)
	req.Header.Set("x-app-key", c.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса к Nutritionix: %w", errvalues.ErrUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа Nutritionix: %w", errvalues.ErrUpstream)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("Nutritionix ответил статусом %d: %w", resp.StatusCode, errvalues.ErrUpstream)
	}

	var parsed exerciseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа Nutritionix: %w", errvalues.ErrUpstream)
	}
	if len(parsed.Exercises) == 0 {
		return nil, fmt.Errorf("тренировка не распознана: %w", errvalues.ErrNotFound)
	}

	out := make([]Exercise, 0, len(parsed.Exercises))
	for _, e := range parsed.Exercises {
		out = append(out, Exercise{Name: e.Name, Calories: e.NFCalories})
	}
	return out, nil
}
