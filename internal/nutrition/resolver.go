// Package nutrition переводит свободный текст пользователя в числа:
// продукт → ккал на 100 г, тренировка → сожжённые ккал, город → температура.
package nutrition

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/errvalues"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/logger"
	"github.com/karinaaa-ed/HealthTrackingBot/pkg/models"
)

// FoodItem — кандидат из поиска продуктов
type FoodItem struct {
	Name            string
	CaloriesPer100g float64
}

// FoodProvider — внешний поиск продуктов. Реализации: FoodData Central
// и Open Food Facts, выбираются конфигурацией
type FoodProvider interface {
	SearchFood(ctx context.Context, query string) ([]FoodItem, error)
}

// ExerciseProvider — внешняя оценка сожжённых калорий
type ExerciseProvider interface {
	EstimateCalories(ctx context.Context, query string, profile models.Profile) (float64, error)
}

// WeatherProvider — внешний сервис текущей погоды
type WeatherProvider interface {
	CurrentTemperature(ctx context.Context, city string) (float64, error)
}

// FoodCache — необязательный кэш результатов поиска продуктов
type FoodCache interface {
	GetFood(query string) (name string, kcalPer100g float64, ok bool, err error)
	SaveFood(query, name string, kcalPer100g float64) error
}

type Resolver struct {
	food     FoodProvider
	exercise ExerciseProvider
	weather  WeatherProvider
	cache    FoodCache // может быть nil
	log      *logger.Logger
}

func NewResolver(food FoodProvider, exercise ExerciseProvider, weather WeatherProvider, cache FoodCache, log *logger.Logger) *Resolver {
	return &Resolver{
		food:     food,
		exercise: exercise,
		weather:  weather,
		cache:    cache,
		log:      log,
	}
}

// ResolveFood находит продукт по описанию и возвращает его имя
// и калорийность на 100 г. Берётся первый кандидат из ответа
func (r *Resolver) ResolveFood(ctx context.Context, query string) (string, float64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", 0, fmt.Errorf("пустой запрос продукта: %w", errvalues.ErrInvalidInput)
	}

	if r.cache != nil {
		name, kcal, ok, err := r.cache.GetFood(query)
		if err != nil {
			r.log.Warn("Ошибка чтения кэша продуктов", "error", err)
		} else if ok {
			return name, kcal, nil
		}
	}

	items, err := r.food.SearchFood(ctx, query)
	if err != nil {
		return "", 0, err
	}
	if len(items) == 0 {
		return "", 0, fmt.Errorf("продукт %q не найден: %w", query, errvalues.ErrNotFound)
	}

	name := capitalize(items[0].Name)
	if name == "" {
		name = capitalize(query)
	}
	kcal := items[0].CaloriesPer100g

	if r.cache != nil {
		if err := r.cache.SaveFood(query, name, kcal); err != nil {
			r.log.Warn("Ошибка записи кэша продуктов", "error", err)
		}
	}
	return name, kcal, nil
}

// ResolveExerciseCalories оценивает сожжённые калории по описанию тренировки
// с учётом веса, роста и возраста пользователя
func (r *Resolver) ResolveExerciseCalories(ctx context.Context, query string, profile models.Profile) (float64, error) {
	return r.exercise.EstimateCalories(ctx, query, profile)
}

// ResolveCityTemperature возвращает температуру в городе. При любой ошибке
// температура помечается как неизвестная — это не то же самое, что 0°C
func (r *Resolver) ResolveCityTemperature(ctx context.Context, city string) (models.Temperature, error) {
	celsius, err := r.weather.CurrentTemperature(ctx, city)
	if err != nil {
		return models.Temperature{}, err
	}
	return models.Temperature{Celsius: celsius, Known: true}, nil
}

// capitalize переводит первую букву в верхний регистр, как в ответах бота
func capitalize(s string) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
