package nutrition

import (
	"context"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/provider/nutritionix"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/provider/openfoodfacts"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/provider/openweather"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/provider/usda"
	"github.com/karinaaa-ed/HealthTrackingBot/pkg/models"
)

// Адаптеры клиентов внешних API к интерфейсам резолвера

type usdaSource struct {
	client *usda.Client
}

func NewUSDASource(client *usda.Client) FoodProvider {
	return &usdaSource{client: client}
}

func (s *usdaSource) SearchFood(ctx context.Context, query string) ([]FoodItem, error) {
	foods, err := s.client.SearchFoods(ctx, query)
	if err != nil {
		return nil, err
	}
	items := make([]FoodItem, 0, len(foods))
	for _, f := range foods {
		items = append(items, FoodItem{Name: f.Description, CaloriesPer100g: f.CaloriesPer100g})
	}
	return items, nil
}

type openFoodFactsSource struct {
	client *openfoodfacts.Client
}

func NewOpenFoodFactsSource(client *openfoodfacts.Client) FoodProvider {
	return &openFoodFactsSource{client: client}
}

func (s *openFoodFactsSource) SearchFood(ctx context.Context, query string) ([]FoodItem, error) {
	products, err := s.client.SearchFoods(ctx, query)
	if err != nil {
		return nil, err
	}
	items := make([]FoodItem, 0, len(products))
	for _, p := range products {
		items = append(items, FoodItem{Name: p.Name, CaloriesPer100g: p.CaloriesPer100g})
	}
	return items, nil
}

type nutritionixSource struct {
	client *nutritionix.Client
}

func NewNutritionixSource(client *nutritionix.Client) ExerciseProvider {
	return &nutritionixSource{client: client}
}

func (s *nutritionixSource) EstimateCalories(ctx context.Context, query string, profile models.Profile) (float64, error) {
	exercises, err := s.client.NaturalExercise(ctx, nutritionix.ExerciseRequest{
		Query: query,
		// Пол в профиле не собирается, Nutritionix требует значение
		Gender:   "male",
		WeightKg: profile.Weight,
		HeightCm: profile.Height,
		Age:      profile.Age,
	})
	if err != nil {
		return 0, err
	}
	return exercises[0].Calories, nil
}

type openWeatherSource struct {
	client *openweather.Client
}

func NewOpenWeatherSource(client *openweather.Client) WeatherProvider {
	return &openWeatherSource{client: client}
}

func (s *openWeatherSource) CurrentTemperature(ctx context.Context, city string) (float64, error) {
	return s.client.CurrentTemperature(ctx, city)
}
