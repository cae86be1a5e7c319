// Package goals содержит чистые функции расчёта дневных норм воды и калорий.
package goals

import (
	"fmt"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/errvalues"
	"github.com/karinaaa-ed/HealthTrackingBot/pkg/models"
)

// WaterGoal рассчитывает дневную норму воды в мл:
// 30 мл на кг веса, 500 мл за каждые полные 30 минут активности,
// плюс 500 мл в жару (выше 25°C). Бонус за погоду не начисляется,
// если температура неизвестна.
func WaterGoal(weightKg, activityMinutes int, temp models.Temperature) (int, error) {
	if weightKg <= 0 {
		return 0, fmt.Errorf("вес должен быть положительным: %w", errvalues.ErrInvalidInput)
	}

	base := weightKg * 30
	activityBonus := activityMinutes / 30 * 500
	weatherBonus := 0
	if temp.Known && temp.Celsius > 25 {
		weatherBonus = 500
	}
	return base + activityBonus + weatherBonus, nil
}

// CalorieGoal рассчитывает дневную норму калорий по формуле
// Миффлина-Сан Жеора с бонусом за активность, ограниченным [200, 400] ккал.
func CalorieGoal(weightKg, heightCm, ageYears, activityMinutes int) float64 {
	base := 10*float64(weightKg) + 6.25*float64(heightCm) - 5*float64(ageYears)

	bonus := activityMinutes * 5
	if bonus < 200 {
		bonus = 200
	}
	if bonus > 400 {
		bonus = 400
	}
	return base + float64(bonus)
}

// ExerciseWaterBonus — дополнительная вода за тренировку:
// 200 мл за каждые полные 30 минут.
func ExerciseWaterBonus(durationMinutes int) int {
	return durationMinutes / 30 * 200
}
