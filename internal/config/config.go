package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Провайдеры поиска продуктов
const (
	FoodProviderUSDA          = "usda"
	FoodProviderOpenFoodFacts = "openfoodfacts"
)

type Config struct {
	TelegramBotToken      string
	OpenWeatherAPIKey     string
	FoodDataCentralAPIKey string
	NutritionixAppID      string
	NutritionixAPIKey     string
	FoodProvider          string // usda | openfoodfacts
	DatabasePath          string
	ChartFontPath         string // необязательный TTF для подписей графиков
	AppEnv                string // dev | prod
}

// Load читает конфигурацию из .env и переменных окружения
func Load() (*Config, error) {
	// .env необязателен: в проде переменные приходят из окружения
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken:      os.Getenv("BOT_TOKEN"),
		OpenWeatherAPIKey:     os.Getenv("OPENWEATHER_API_KEY"),
		FoodDataCentralAPIKey: os.Getenv("FOOD_DATA_CENTRAL_API_KEY"),
		NutritionixAppID:      os.Getenv("NUTRITIONIX_APP_ID"),
		NutritionixAPIKey:     os.Getenv("NUTRITIONIX_API_KEY"),
		FoodProvider:          os.Getenv("FOOD_PROVIDER"),
		DatabasePath:          os.Getenv("DATABASE_PATH"),
		ChartFontPath:         os.Getenv("CHART_FONT"),
		AppEnv:                os.Getenv("APP_ENV"),
	}

	if cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("не задана переменная окружения BOT_TOKEN")
	}
	if cfg.FoodProvider == "" {
		cfg.FoodProvider = FoodProviderUSDA
	}
	if cfg.FoodProvider != FoodProviderUSDA && cfg.FoodProvider != FoodProviderOpenFoodFacts {
		return nil, fmt.Errorf("неизвестный FOOD_PROVIDER %q (ожидается usda или openfoodfacts)", cfg.FoodProvider)
	}
	if cfg.FoodProvider == FoodProviderUSDA && cfg.FoodDataCentralAPIKey == "" {
		return nil, fmt.Errorf("не задана переменная окружения FOOD_DATA_CENTRAL_API_KEY")
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "healthbot.db"
	}
	return cfg, nil
}
