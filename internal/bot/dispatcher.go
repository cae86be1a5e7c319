package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/errvalues"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/goals"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/ledger"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/logger"
	"github.com/karinaaa-ed/HealthTrackingBot/internal/session"
	"github.com/karinaaa-ed/HealthTrackingBot/pkg/locales"
	"github.com/karinaaa-ed/HealthTrackingBot/pkg/models"
)

// Данные callback-кнопок выбора графика
const (
	CallbackChartWater    = "chart_water"
	CallbackChartCalories = "chart_calories"
)

// Dispatcher — ядро бота: маршрутизирует входящие сообщения между
// диалогами (FSM) и обработчиками команд, не зная о Telegram API
type Dispatcher struct {
	ledger   *ledger.Store
	sessions *session.Store
	resolver NutritionResolver
	charts   ChartRenderer
	log      *logger.Logger

	// Сообщения одного пользователя обрабатываются строго по очереди
	userLocks sync.Map // int64 -> *sync.Mutex
}

func NewDispatcher(ledgerStore *ledger.Store, sessions *session.Store, resolver NutritionResolver, charts ChartRenderer, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		ledger:   ledgerStore,
		sessions: sessions,
		resolver: resolver,
		charts:   charts,
		log:      log,
	}
}

func (d *Dispatcher) lockFor(userID int64) *sync.Mutex {
	mu, _ := d.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// HandleMessage — единая точка входа для текстовых сообщений.
// command — имя команды без слэша, пустое для обычного текста;
// text — аргументы команды или весь текст сообщения
func (d *Dispatcher) HandleMessage(ctx context.Context, userID int64, command, text string) models.Reply {
	mu := d.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	// Команды имеют приоритет над открытым диалогом:
	// /set_profile посреди онбординга начинает его заново
	if command != "" {
		return d.handleCommand(ctx, userID, command, text)
	}
	return d.handleSessionAnswer(ctx, userID, text)
}

// HandleCallback обрабатывает нажатия inline-кнопок
func (d *Dispatcher) HandleCallback(ctx context.Context, userID int64, data string) models.Reply {
	mu := d.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	l := locales.Get()
	switch data {
	case CallbackChartWater:
		return d.chartReply(userID, l.Charts.WaterCaption, func(s models.Snapshot) ([]byte, error) {
			return d.charts.WaterChart(s)
		})
	case CallbackChartCalories:
		return d.chartReply(userID, l.Charts.CaloriesCaption, func(s models.Snapshot) ([]byte, error) {
			return d.charts.CalorieChart(s)
		})
	}
	return models.Reply{}
}

func (d *Dispatcher) handleCommand(ctx context.Context, userID int64, command, args string) models.Reply {
	l := locales.Get()

	switch command {
	case "start":
		return models.Reply{Text: l.Common.Start}
	case "help":
		return models.Reply{Text: l.Common.Help}
	case "set_profile":
		d.sessions.StartProfile(userID)
		return models.Reply{Text: l.Profile.AskWeight}
	case "log_water":
		return d.handleLogWater(userID, args)
	case "log_food":
		return d.handleLogFood(ctx, userID, args)
	case "log_workout":
		return d.handleLogWorkout(ctx, userID, args)
	case "check_progress":
		return d.handleCheckProgress(userID)
	case "progress_charts":
		return models.Reply{
			Text: l.Charts.Choose,
			Buttons: []models.Button{
				{Label: l.Charts.WaterButton, Data: CallbackChartWater},
				{Label: l.Charts.CaloriesButton, Data: CallbackChartCalories},
			},
		}
	case "update_weight":
		return d.handleUpdateWeight(userID, args)
	case "reset":
		return d.handleReset(userID)
	}
	return models.Reply{Text: l.Common.UnknownCommand}
}

// handleSessionAnswer передаёт обычный текст открытому диалогу пользователя.
// Без открытого диалога свободный текст игнорируется
func (d *Dispatcher) handleSessionAnswer(ctx context.Context, userID int64, text string) models.Reply {
	sess, ok := d.sessions.Get(userID)
	if !ok {
		return models.Reply{}
	}

	if sess.State == models.StateAwaitFoodWeight {
		return d.handleFoodWeight(userID, sess, text)
	}
	return d.handleProfileStep(ctx, userID, sess, text)
}

func (d *Dispatcher) handleProfileStep(ctx context.Context, userID int64, sess models.Session, answer string) models.Reply {
	l := locales.Get()

	next, err := session.ApplyAnswer(&sess, answer)
	if err != nil {
		// Некорректный ответ — повторяем тот же вопрос
		hint := l.Profile.BadNumber
		if sess.State == models.StateAwaitCity {
			hint = l.Profile.BadCity
		}
		return models.Reply{Text: hint + "\n" + d.profilePrompt(sess.State)}
	}

	if next == models.StateDone {
		return d.completeProfile(ctx, userID, sess.Profile)
	}
	d.sessions.Set(userID, sess)
	return models.Reply{Text: d.profilePrompt(next)}
}

func (d *Dispatcher) profilePrompt(state string) string {
	l := locales.Get()
	switch state {
	case models.StateAwaitWeight:
		return l.Profile.AskWeight
	case models.StateAwaitHeight:
		return l.Profile.AskHeight
	case models.StateAwaitAge:
		return l.Profile.AskAge
	case models.StateAwaitActivity:
		return l.Profile.AskActivity
	case models.StateAwaitCity:
		return l.Profile.AskCity
	}
	return ""
}

// completeProfile завершает онбординг: погода, расчёт целей, создание записи.
// Недоступная погода не прерывает онбординг — бонус за жару просто не начисляется
func (d *Dispatcher) completeProfile(ctx context.Context, userID int64, profile models.Profile) models.Reply {
	l := locales.Get()

	temp, err := d.resolver.ResolveCityTemperature(ctx, profile.City)
	if err != nil {
		d.log.Warn("Температура недоступна, онбординг продолжается без неё",
			"user_id", userID, "city", profile.City, "error", err)
		temp = models.Temperature{}
	}

	waterGoal, err := goals.WaterGoal(profile.Weight, profile.Activity, temp)
	if err != nil {
		// Вес валидируется на первом шаге, сюда попасть нельзя
		d.log.Error("Не удалось рассчитать норму воды", "user_id", userID, "error", err)
		return models.Reply{Text: l.Profile.BadNumber}
	}
	calorieGoal := goals.CalorieGoal(profile.Weight, profile.Height, profile.Age, profile.Activity)

	d.ledger.Create(userID, profile, waterGoal, calorieGoal)
	d.sessions.Clear(userID)

	tempText := l.Profile.TemperatureUnknown
	if temp.Known {
		tempText = formatKcal(temp.Celsius)
	}
	return models.Reply{Text: fmt.Sprintf(l.Profile.Summary,
		profile.Weight, profile.Height, profile.Age, profile.Activity, profile.City,
		tempText, waterGoal, formatKcal(calorieGoal))}
}

func (d *Dispatcher) handleLogWater(userID int64, args string) models.Reply {
	l := locales.Get()
	if !d.ledger.Exists(userID) {
		return models.Reply{Text: l.Common.NoProfile}
	}

	fields := strings.Fields(args)
	if len(fields) != 1 {
		return models.Reply{Text: l.Water.Usage}
	}
	ml, err := strconv.Atoi(fields[0])
	if err != nil || ml <= 0 {
		return models.Reply{Text: l.Water.Usage}
	}

	remaining, err := d.ledger.LogWater(userID, ml)
	if err != nil {
		if errors.Is(err, errvalues.ErrNoProfile) {
			return models.Reply{Text: l.Common.NoProfile}
		}
		return models.Reply{Text: l.Water.Usage}
	}
	return models.Reply{Text: fmt.Sprintf(l.Water.Logged, ml, remaining)}
}

func (d *Dispatcher) handleLogFood(ctx context.Context, userID int64, args string) models.Reply {
	l := locales.Get()
	if !d.ledger.Exists(userID) {
		return models.Reply{Text: l.Common.NoProfile}
	}

	query := strings.TrimSpace(args)
	if query == "" {
		return models.Reply{Text: l.Food.Usage}
	}

	name, caloriesPer100g, err := d.resolver.ResolveFood(ctx, query)
	if err != nil {
		if errors.Is(err, errvalues.ErrNotFound) {
			return models.Reply{Text: fmt.Sprintf(l.Food.NotFound, query)}
		}
		d.log.Warn("Ошибка поиска продукта", "user_id", userID, "query", query, "error", err)
		return models.Reply{Text: l.Food.LookupError}
	}

	d.sessions.StartFood(userID, name, caloriesPer100g)
	return models.Reply{Text: fmt.Sprintf(l.Food.Found, name, formatKcal(caloriesPer100g))}
}

// handleFoodWeight — второй шаг диалога еды: граммы → калории в запись
func (d *Dispatcher) handleFoodWeight(userID int64, sess models.Session, answer string) models.Reply {
	l := locales.Get()

	grams, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	if err != nil || grams <= 0 {
		// Сессия сохраняется: пользователь вводит граммы ещё раз
		return models.Reply{Text: l.Food.BadGrams}
	}

	total := sess.CaloriesPer100g * grams / 100
	newTotal, err := d.ledger.LogCalories(userID, total)
	if err != nil {
		d.sessions.Clear(userID)
		return models.Reply{Text: l.Common.NoProfile}
	}

	d.sessions.Clear(userID)
	return models.Reply{Text: fmt.Sprintf(l.Food.Logged, sess.FoodName, formatKcal(total), formatKcal(newTotal))}
}

func (d *Dispatcher) handleLogWorkout(ctx context.Context, userID int64, args string) models.Reply {
	l := locales.Get()
	if !d.ledger.Exists(userID) {
		return models.Reply{Text: l.Common.NoProfile}
	}

	fields := strings.Fields(args)
	if len(fields) != 2 {
		return models.Reply{Text: l.Workout.Usage}
	}
	workoutType := strings.ToLower(fields[0])
	duration, err := strconv.Atoi(fields[1])
	if err != nil || duration <= 0 {
		return models.Reply{Text: l.Workout.BadDuration}
	}

	profile, err := d.ledger.Profile(userID)
	if err != nil {
		return models.Reply{Text: l.Common.NoProfile}
	}

	query := fmt.Sprintf("%d minutes of %s", duration, workoutType)
	burned, err := d.resolver.ResolveExerciseCalories(ctx, query, profile)
	if err != nil {
		if errors.Is(err, errvalues.ErrNotFound) {
			return models.Reply{Text: fmt.Sprintf(l.Workout.NotFound, workoutType)}
		}
		d.log.Warn("Ошибка оценки тренировки", "user_id", userID, "query", query, "error", err)
		return models.Reply{Text: l.Workout.LookupError}
	}

	extraWater := goals.ExerciseWaterBonus(duration)
	remaining, err := d.ledger.LogExercise(userID, burned, extraWater)
	if err != nil {
		return models.Reply{Text: l.Common.NoProfile}
	}

	return models.Reply{Text: fmt.Sprintf(l.Workout.Logged,
		capitalize(workoutType), duration, formatKcal(burned), extraWater, remaining)}
}

func (d *Dispatcher) handleCheckProgress(userID int64) models.Reply {
	l := locales.Get()

	snap, err := d.ledger.Snapshot(userID)
	if err != nil {
		return models.Reply{Text: l.Common.NoProfile}
	}
	return models.Reply{
		Text: fmt.Sprintf(l.Progress.Report,
			snap.WaterConsumed, snap.WaterGoal, snap.WaterRemaining,
			formatKcal(snap.CaloriesConsumed), formatKcal(snap.CalorieGoal),
			formatKcal(snap.CaloriesBurned), formatKcal(snap.CalorieBalance)),
		HTML: true,
	}
}

func (d *Dispatcher) handleUpdateWeight(userID int64, args string) models.Reply {
	l := locales.Get()

	fields := strings.Fields(args)
	if len(fields) != 1 {
		return models.Reply{Text: l.Profile.UpdateWeightUsage}
	}
	weight, err := strconv.Atoi(fields[0])
	if err != nil || weight <= 0 {
		return models.Reply{Text: l.Profile.UpdateWeightUsage}
	}

	if err := d.ledger.UpdateWeight(userID, weight); err != nil {
		return models.Reply{Text: l.Common.NoProfile}
	}
	return models.Reply{Text: fmt.Sprintf(l.Profile.WeightUpdated, weight)}
}

func (d *Dispatcher) handleReset(userID int64) models.Reply {
	l := locales.Get()

	// Незавершённый диалог тоже сбрасывается
	d.sessions.Clear(userID)
	if err := d.ledger.Reset(userID); err != nil {
		return models.Reply{Text: l.Profile.ResetMissing}
	}
	return models.Reply{Text: l.Profile.ResetDone}
}

func (d *Dispatcher) chartReply(userID int64, caption string, render func(models.Snapshot) ([]byte, error)) models.Reply {
	l := locales.Get()

	snap, err := d.ledger.Snapshot(userID)
	if err != nil {
		return models.Reply{Text: l.Common.NoProfile}
	}
	png, err := render(snap)
	if err != nil {
		d.log.Error("Не удалось построить график", "user_id", userID, "error", err)
		return models.Reply{Text: l.Charts.RenderError}
	}
	return models.Reply{Photo: png, Caption: caption}
}

// formatKcal — одна цифра после запятой для калорий и температуры
func formatKcal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
