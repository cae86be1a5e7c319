package bot

import (
	"context"

	"github.com/karinaaa-ed/HealthTrackingBot/pkg/models"
)

// NutritionResolver переводит свободный текст во внешние данные:
// продукты, тренировки, погоду
type NutritionResolver interface {
	ResolveFood(ctx context.Context, query string) (name string, caloriesPer100g float64, err error)
	ResolveExerciseCalories(ctx context.Context, query string, profile models.Profile) (float64, error)
	ResolveCityTemperature(ctx context.Context, city string) (models.Temperature, error)
}

// ChartRenderer строит PNG-графики прогресса
type ChartRenderer interface {
	WaterChart(s models.Snapshot) ([]byte, error)
	CalorieChart(s models.Snapshot) ([]byte, error)
}
