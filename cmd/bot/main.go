package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/bot"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/charts"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/config"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/database"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/ledger"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/logger"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/nutrition"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/provider/nutritionix"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/provider/openfoodfacts"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/provider/openweather"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/provider/usda"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	lg, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Не удалось создать логгер: %v", err)
	}
	defer lg.Sync()

	// Кэш поиска продуктов
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		lg.Fatal("Не удалось создать базу данных", "error", err)
	}
	defer db.Close()

	// Провайдер поиска продуктов выбирается конфигурацией
	var food nutrition.FoodProvider
	switch cfg.FoodProvider {
	case config.FoodProviderOpenFoodFacts:
		food = nutrition.NewOpenFoodFactsSource(&openfoodfacts.Client{})
	default:
		food = nutrition.NewUSDASource(&usda.Client{APIKey: cfg.FoodDataCentralAPIKey})
	}

	resolver := nutrition.NewResolver(
		food,
		nutrition.NewNutritionixSource(&nutritionix.Client{AppID: cfg.NutritionixAppID, APIKey: cfg.NutritionixAPIKey}),
		nutrition.NewOpenWeatherSource(&openweather.Client{APIKey: cfg.OpenWeatherAPIKey}),
		db,
		lg.With("component", "nutrition"),
	)

	renderer, err := charts.NewRenderer(cfg.ChartFontPath)
	if err != nil {
		lg.Fatal("Не удалось создать рендерер графиков", "error", err)
	}

	dispatcher := bot.NewDispatcher(
		ledger.NewStore(),
		session.NewStore(),
		resolver,
		renderer,
		lg.With("component", "dispatcher"),
	)

	b, err := bot.New(cfg.TelegramBotToken, dispatcher, lg.With("component", "bot"))
	if err != nil {
		lg.Fatal("Не удалось создать бота", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lg.Info("Бот запущен", "food_provider", cfg.FoodProvider)
	if err := b.Start(ctx); err != nil {
		lg.Fatal("Ошибка обработки обновлений", "error", err)
	}
}
