// Package ledger хранит записи трекинга пользователей в памяти процесса.
package ledger

import (
	"fmt"
	"sync"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/errvalues"
	"github.com/karinaaa-ed/HealthTrackingBot/pkg/models"
)

// Store — потокобезопасное хранилище записей трекинга, ключ — Telegram user id.
// Состояние живёт только в памяти процесса: персистентность не входит в задачу
type Store struct {
	mu      sync.RWMutex
	entries map[int64]*models.Entry
}

func NewStore() *Store {
	return &Store{entries: make(map[int64]*models.Entry)}
}

// Create создаёт запись трекинга с рассчитанными целями.
// Существующая запись перезаписывается: повторный онбординг начинает всё заново
func (s *Store) Create(userID int64, profile models.Profile, waterGoal int, calorieGoal float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = &models.Entry{
		Profile:     profile,
		WaterGoal:   waterGoal,
		CalorieGoal: calorieGoal,
	}
}

// Exists сообщает, есть ли у пользователя настроенный профиль
func (s *Store) Exists(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[userID]
	return ok
}

// Profile возвращает профиль пользователя
func (s *Store) Profile(userID int64) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[userID]
	if !ok {
		return models.Profile{}, errvalues.ErrNoProfile
	}
	return entry.Profile, nil
}

// LogWater добавляет выпитую воду и возвращает остаток до нормы
func (s *Store) LogWater(userID int64, ml int) (int, error) {
	if ml <= 0 {
		return 0, fmt.Errorf("объём воды должен быть положительным: %w", errvalues.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		return 0, errvalues.ErrNoProfile
	}
	entry.LoggedWater += ml
	return remainingWater(entry), nil
}

// LogCalories добавляет потреблённые калории и возвращает новый суммарный итог
func (s *Store) LogCalories(userID int64, kcal float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		return 0, errvalues.ErrNoProfile
	}
	entry.LoggedCalories += kcal
	return entry.LoggedCalories, nil
}

// LogExercise одним обновлением добавляет сожжённые калории и
// дополнительную воду за тренировку; возвращает остаток воды до нормы
func (s *Store) LogExercise(userID int64, burnedKcal float64, extraWaterMl int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		return 0, errvalues.ErrNoProfile
	}
	entry.BurnedCalories += burnedKcal
	entry.LoggedWater += extraWaterMl
	return remainingWater(entry), nil
}

// UpdateWeight обновляет только вес в профиле.
// Цели при этом не пересчитываются — они фиксируются при онбординге
func (s *Store) UpdateWeight(userID int64, weightKg int) error {
	if weightKg <= 0 {
		return fmt.Errorf("вес должен быть положительным: %w", errvalues.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		return errvalues.ErrNoProfile
	}
	entry.Profile.Weight = weightKg
	return nil
}

// Snapshot возвращает срез текущего прогресса пользователя
func (s *Store) Snapshot(userID int64) (models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[userID]
	if !ok {
		return models.Snapshot{}, errvalues.ErrNoProfile
	}
	return models.Snapshot{
		WaterConsumed:    entry.LoggedWater,
		WaterGoal:        entry.WaterGoal,
		WaterRemaining:   remainingWater(entry),
		CaloriesConsumed: entry.LoggedCalories,
		CalorieGoal:      entry.CalorieGoal,
		CaloriesBurned:   entry.BurnedCalories,
		CalorieBalance:   entry.LoggedCalories - entry.BurnedCalories,
	}, nil
}

// Reset удаляет запись трекинга пользователя
func (s *Store) Reset(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[userID]; !ok {
		return errvalues.ErrNoProfile
	}
	delete(s.entries, userID)
	return nil
}

func remainingWater(entry *models.Entry) int {
	remaining := entry.WaterGoal - entry.LoggedWater
	if remaining < 0 {
		return 0
	}
	return remaining
}
