package bot_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/bot"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/errvalues"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/ledger"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/logger"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/session"
	"github.com/karinaaa-ed/HealthTrackingBot/pkg/models"
)

type fakeResolver struct {
	foodName string
	foodKcal float64
	foodErr  error

	exerciseKcal float64
	exerciseErr  error

	temp    models.Temperature
	tempErr error
}

func (f *fakeResolver) ResolveFood(_ context.Context, _ string) (string, float64, error) {
	if f.foodErr != nil {
		return "", 0, f.foodErr
	}
	return f.foodName, f.foodKcal, nil
}

func (f *fakeResolver) ResolveExerciseCalories(_ context.Context, _ string, _ models.Profile) (float64, error) {
	if f.exerciseErr != nil {
		return 0, f.exerciseErr
	}
	return f.exerciseKcal, nil
}

func (f *fakeResolver) ResolveCityTemperature(_ context.Context, _ string) (models.Temperature, error) {
	if f.tempErr != nil {
		return models.Temperature{}, f.tempErr
	}
	return f.temp, nil
}

type fakeCharts struct{}

func (fakeCharts) WaterChart(models.Snapshot) ([]byte, error)   { return []byte("png-water"), nil }
func (fakeCharts) CalorieChart(models.Snapshot) ([]byte, error) { return []byte("png-cal"), nil }

func newDispatcher(resolver *fakeResolver) (*bot.Dispatcher, *ledger.Store) {
	ledgerStore := ledger.NewStore()
	d := bot.NewDispatcher(ledgerStore, session.NewStore(), resolver, fakeCharts{}, logger.Nop())
	return d, ledgerStore
}

// onboard проводит пользователя через весь онбординг
func onboard(t *testing.T, d *bot.Dispatcher, userID int64) {
	t.Helper()
	ctx := context.Background()

	reply := d.HandleMessage(ctx, userID, "set_profile", "")
	require.Contains(t, reply.Text, "вес")
	for _, answer := range []string{"70", "175", "30", "40"} {
		reply = d.HandleMessage(ctx, userID, "", answer)
		require.NotEmpty(t, reply.Text)
	}
	reply = d.HandleMessage(ctx, userID, "", "Berlin")
	require.Contains(t, reply.Text, "Профиль настроен")
}

func TestOnboarding(t *testing.T) {
	ctx := context.Background()
	const userID int64 = 1

	t.Run("completes with hot weather", func(t *testing.T) {
		d, ledgerStore := newDispatcher(&fakeResolver{temp: models.Temperature{Celsius: 28, Known: true}})

		onboard(t, d, userID)

		snap, err := ledgerStore.Snapshot(userID)
		require.NoError(t, err)
		assert.Equal(t, 3100, snap.WaterGoal)
		assert.InDelta(t, 1843.75, snap.CalorieGoal, 1e-9)
	})

	t.Run("weather failure does not abort onboarding", func(t *testing.T) {
		d, ledgerStore := newDispatcher(&fakeResolver{tempErr: fmt.Errorf("нет погоды: %w", errvalues.ErrUpstream)})

		reply := d.HandleMessage(ctx, userID, "set_profile", "")
		require.NotEmpty(t, reply.Text)
		for _, answer := range []string{"70", "175", "30", "40"} {
			d.HandleMessage(ctx, userID, "", answer)
		}
		reply = d.HandleMessage(ctx, userID, "", "Atlantis")
		assert.Contains(t, reply.Text, "Профиль настроен")
		assert.Contains(t, reply.Text, "неизвестна")

		// Без данных о погоде бонус за жару не начисляется
		snap, err := ledgerStore.Snapshot(userID)
		require.NoError(t, err)
		assert.Equal(t, 2600, snap.WaterGoal)
	})

	t.Run("invalid answer re-prompts the same step", func(t *testing.T) {
		d, _ := newDispatcher(&fakeResolver{temp: models.Temperature{Celsius: 20, Known: true}})

		d.HandleMessage(ctx, userID, "set_profile", "")
		reply := d.HandleMessage(ctx, userID, "", "семьдесят")
		assert.Contains(t, reply.Text, "число")
		assert.Contains(t, reply.Text, "вес")

		// Корректный ответ продолжает с того же шага
		reply = d.HandleMessage(ctx, userID, "", "70")
		assert.Contains(t, reply.Text, "рост")
	})

	t.Run("set_profile mid-dialogue restarts from weight", func(t *testing.T) {
		d, _ := newDispatcher(&fakeResolver{temp: models.Temperature{Celsius: 20, Known: true}})

		d.HandleMessage(ctx, userID, "set_profile", "")
		d.HandleMessage(ctx, userID, "", "70")
		reply := d.HandleMessage(ctx, userID, "set_profile", "")
		assert.Contains(t, reply.Text, "вес")
	})
}

func TestNoProfileGuards(t *testing.T) {
	ctx := context.Background()
	const userID int64 = 2
	d, _ := newDispatcher(&fakeResolver{})

	for _, tc := range []struct {
		command string
		args    string
	}{
		{"log_water", "250"},
		{"log_food", "banana"},
		{"log_workout", "бег 30"},
		{"check_progress", ""},
		{"update_weight", "80"},
	} {
		reply := d.HandleMessage(ctx, userID, tc.command, tc.args)
		assert.Contains(t, reply.Text, "/set_profile", "команда %s", tc.command)
	}

	reply := d.HandleMessage(ctx, userID, "reset", "")
	assert.Contains(t, reply.Text, "нет настроенного профиля")
}

func TestLogWater(t *testing.T) {
	ctx := context.Background()
	const userID int64 = 3
	d, _ := newDispatcher(&fakeResolver{temp: models.Temperature{Celsius: 20, Known: true}})
	onboard(t, d, userID) // цель 2600 мл

	t.Run("accumulates", func(t *testing.T) {
		reply := d.HandleMessage(ctx, userID, "log_water", "500")
		assert.Equal(t, "Записано: 500 мл воды. Осталось до нормы: 2100 мл.", reply.Text)

		reply = d.HandleMessage(ctx, userID, "log_water", "700")
		assert.Equal(t, "Записано: 700 мл воды. Осталось до нормы: 1400 мл.", reply.Text)
	})

	t.Run("usage hint on bad input", func(t *testing.T) {
		for _, args := range []string{"", "abc", "-50", "0", "250 мл"} {
			reply := d.HandleMessage(ctx, userID, "log_water", args)
			assert.Contains(t, reply.Text, "/log_water 250")
		}
	})
}

func TestLogFood(t *testing.T) {
	ctx := context.Background()
	const userID int64 = 4

	t.Run("two-step dialogue commits calories", func(t *testing.T) {
		d, ledgerStore := newDispatcher(&fakeResolver{
			temp:     models.Temperature{Celsius: 20, Known: true},
			foodName: "Banana",
			foodKcal: 89,
		})
		onboard(t, d, userID)

		reply := d.HandleMessage(ctx, userID, "log_food", "banana")
		assert.Contains(t, reply.Text, "Banana — 89.0 ккал на 100 г")
		assert.Contains(t, reply.Text, "Сколько грамм")

		reply = d.HandleMessage(ctx, userID, "", "150")
		assert.Contains(t, reply.Text, "Записано: Banana — 133.5 ккал")
		assert.Contains(t, reply.Text, "133.5 ккал.")

		snap, err := ledgerStore.Snapshot(userID)
		require.NoError(t, err)
		assert.InDelta(t, 133.5, snap.CaloriesConsumed, 1e-9)

		// Диалог завершён: следующий текст игнорируется
		reply = d.HandleMessage(ctx, userID, "", "200")
		assert.True(t, reply.Empty())
	})

	t.Run("bad grams re-prompts", func(t *testing.T) {
		d, _ := newDispatcher(&fakeResolver{
			temp:     models.Temperature{Celsius: 20, Known: true},
			foodName: "Banana",
			foodKcal: 89,
		})
		onboard(t, d, userID)

		d.HandleMessage(ctx, userID, "log_food", "banana")
		reply := d.HandleMessage(ctx, userID, "", "много")
		assert.Contains(t, reply.Text, "число грамм")

		reply = d.HandleMessage(ctx, userID, "", "100")
		assert.Contains(t, reply.Text, "Записано: Banana")
	})

	t.Run("not found", func(t *testing.T) {
		d, _ := newDispatcher(&fakeResolver{
			temp:    models.Temperature{Celsius: 20, Known: true},
			foodErr: fmt.Errorf("пусто: %w", errvalues.ErrNotFound),
		})
		onboard(t, d, userID)

		reply := d.HandleMessage(ctx, userID, "log_food", "qwerty")
		assert.Contains(t, reply.Text, "'qwerty' не найден")
	})

	t.Run("upstream error", func(t *testing.T) {
		d, _ := newDispatcher(&fakeResolver{
			temp:    models.Temperature{Celsius: 20, Known: true},
			foodErr: fmt.Errorf("сбой: %w", errvalues.ErrUpstream),
		})
		onboard(t, d, userID)

		reply := d.HandleMessage(ctx, userID, "log_food", "banana")
		assert.Contains(t, reply.Text, "Попробуйте позже")
	})

	t.Run("usage hint without arguments", func(t *testing.T) {
		d, _ := newDispatcher(&fakeResolver{temp: models.Temperature{Celsius: 20, Known: true}})
		onboard(t, d, userID)

		reply := d.HandleMessage(ctx, userID, "log_food", "")
		assert.Contains(t, reply.Text, "/log_food banana")
	})
}

func TestLogWorkout(t *testing.T) {
	ctx := context.Background()
	const userID int64 = 5

	t.Run("logs burn and extra water", func(t *testing.T) {
		d, ledgerStore := newDispatcher(&fakeResolver{
			temp:         models.Temperature{Celsius: 20, Known: true},
			exerciseKcal: 350.5,
		})
		onboard(t, d, userID) // цель 2600 мл

		reply := d.HandleMessage(ctx, userID, "log_workout", "бег 65")
		assert.Contains(t, reply.Text, "Бег 65 минут — 350.5 ккал")
		assert.Contains(t, reply.Text, "выпейте 400 мл воды")
		assert.Contains(t, reply.Text, "Осталось до нормы воды: 2200 мл")

		snap, err := ledgerStore.Snapshot(userID)
		require.NoError(t, err)
		assert.InDelta(t, 350.5, snap.CaloriesBurned, 1e-9)
		assert.Equal(t, 400, snap.WaterConsumed)
	})

	t.Run("usage hints", func(t *testing.T) {
		d, _ := newDispatcher(&fakeResolver{temp: models.Temperature{Celsius: 20, Known: true}})
		onboard(t, d, userID)

		reply := d.HandleMessage(ctx, userID, "log_workout", "бег")
		assert.Contains(t, reply.Text, "/log_workout бег 30")

		reply = d.HandleMessage(ctx, userID, "log_workout", "бег тридцать")
		assert.Contains(t, reply.Text, "числом")
	})

	t.Run("exercise not recognized", func(t *testing.T) {
		d, _ := newDispatcher(&fakeResolver{
			temp:        models.Temperature{Celsius: 20, Known: true},
			exerciseErr: fmt.Errorf("пусто: %w", errvalues.ErrNotFound),
		})
		onboard(t, d, userID)

		reply := d.HandleMessage(ctx, userID, "log_workout", "левитация 30")
		assert.Contains(t, reply.Text, "Не удалось найти информацию о тренировке: левитация")
	})
}

func TestCheckProgress(t *testing.T) {
	ctx := context.Background()
	const userID int64 = 6
	d, _ := newDispatcher(&fakeResolver{
		temp:         models.Temperature{Celsius: 20, Known: true},
		foodName:     "Banana",
		foodKcal:     89,
		exerciseKcal: 100,
	})
	onboard(t, d, userID)

	d.HandleMessage(ctx, userID, "log_water", "600")
	d.HandleMessage(ctx, userID, "log_food", "banana")
	d.HandleMessage(ctx, userID, "", "200")
	d.HandleMessage(ctx, userID, "log_workout", "бег 30")

	reply := d.HandleMessage(ctx, userID, "check_progress", "")
	assert.True(t, reply.HTML)
	assert.Contains(t, reply.Text, "Выпито: 800 мл из 2600 мл")
	assert.Contains(t, reply.Text, "Потреблено: 178.0 ккал из 1843.8 ккал")
	assert.Contains(t, reply.Text, "Сожжено: 100.0 ккал")
	assert.Contains(t, reply.Text, "Баланс: 78.0 ккал")

	// Повторный запрос без изменений даёт тот же отчёт
	again := d.HandleMessage(ctx, userID, "check_progress", "")
	assert.Equal(t, reply, again)
}

func TestChartsFlow(t *testing.T) {
	ctx := context.Background()
	const userID int64 = 8
	d, _ := newDispatcher(&fakeResolver{temp: models.Temperature{Celsius: 20, Known: true}})

	t.Run("callback without profile", func(t *testing.T) {
		reply := d.HandleCallback(ctx, userID, bot.CallbackChartWater)
		assert.Contains(t, reply.Text, "/set_profile")
	})

	t.Run("selection keyboard and photos", func(t *testing.T) {
		onboard(t, d, userID)

		reply := d.HandleMessage(ctx, userID, "progress_charts", "")
		require.Len(t, reply.Buttons, 2)
		assert.Equal(t, bot.CallbackChartWater, reply.Buttons[0].Data)
		assert.Equal(t, bot.CallbackChartCalories, reply.Buttons[1].Data)

		water := d.HandleCallback(ctx, userID, bot.CallbackChartWater)
		assert.Equal(t, []byte("png-water"), water.Photo)
		assert.NotEmpty(t, water.Caption)

		calories := d.HandleCallback(ctx, userID, bot.CallbackChartCalories)
		assert.Equal(t, []byte("png-cal"), calories.Photo)
	})

	t.Run("unknown callback is ignored", func(t *testing.T) {
		reply := d.HandleCallback(ctx, userID, "chart_unknown")
		assert.True(t, reply.Empty())
	})
}

func TestUpdateWeightAndReset(t *testing.T) {
	ctx := context.Background()
	const userID int64 = 9
	d, ledgerStore := newDispatcher(&fakeResolver{temp: models.Temperature{Celsius: 28, Known: true}})
	onboard(t, d, userID)

	t.Run("update weight keeps goals", func(t *testing.T) {
		reply := d.HandleMessage(ctx, userID, "update_weight", "90")
		assert.Equal(t, "Ваш вес обновлён: 90 кг.", reply.Text)

		snap, err := ledgerStore.Snapshot(userID)
		require.NoError(t, err)
		assert.Equal(t, 3100, snap.WaterGoal)
	})

	t.Run("usage hint", func(t *testing.T) {
		reply := d.HandleMessage(ctx, userID, "update_weight", "девяносто")
		assert.Contains(t, reply.Text, "/update_weight")
	})

	t.Run("reset then progress", func(t *testing.T) {
		reply := d.HandleMessage(ctx, userID, "reset", "")
		assert.Contains(t, reply.Text, "сброшен")

		reply = d.HandleMessage(ctx, userID, "check_progress", "")
		assert.Contains(t, reply.Text, "/set_profile")
	})
}

func TestStartHelpUnknown(t *testing.T) {
	ctx := context.Background()
	d, _ := newDispatcher(&fakeResolver{})

	reply := d.HandleMessage(ctx, 10, "start", "")
	assert.Contains(t, reply.Text, "Добро пожаловать")

	reply = d.HandleMessage(ctx, 10, "help", "")
	for _, cmd := range []string{"/set_profile", "/log_water", "/log_food", "/log_workout", "/check_progress", "/progress_charts", "/update_weight", "/reset"} {
		assert.True(t, strings.Contains(reply.Text, cmd), "в справке нет %s", cmd)
	}

	reply = d.HandleMessage(ctx, 10, "frobnicate", "")
	assert.Contains(t, reply.Text, "/help")

	// Свободный текст без открытого диалога игнорируется
	reply = d.HandleMessage(ctx, 10, "", "привет")
	assert.True(t, reply.Empty())
}
