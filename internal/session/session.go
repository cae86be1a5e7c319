// Package session хранит незавершённые диалоги пользователей и
// описывает переходы конечного автомата онбординга.
package session

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/errvalues"
	"github.com/karinaaa-ed/HealthTrackingBot/pkg/models"
)

// Store — потокобезопасное хранилище сессий, ключ — Telegram user id
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*models.Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*models.Session)}
}

// StartProfile начинает онбординг профиля с первого шага.
// Любой незавершённый диалог пользователя при этом отбрасывается
func (s *Store) StartProfile(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = &models.Session{State: models.StateAwaitWeight}
}

// StartFood начинает диалог логирования еды с найденным продуктом
func (s *Store) StartFood(userID int64, foodName string, caloriesPer100g float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = &models.Session{
		State:           models.StateAwaitFoodWeight,
		FoodName:        foodName,
		CaloriesPer100g: caloriesPer100g,
	}
}

// Get возвращает копию сессии пользователя
func (s *Store) Get(userID int64) (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return models.Session{}, false
	}
	return *sess, true
}

// Set сохраняет сессию пользователя
func (s *Store) Set(userID int64, sess models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = &sess
}

// Clear удаляет сессию пользователя
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}

// ApplyAnswer записывает ответ текущего шага онбординга в профиль сессии
// и переводит её на следующий шаг. На последнем шаге (город) возвращает
// StateDone — вызывающий код завершает онбординг и очищает сессию.
// Некорректный ответ возвращает ErrInvalidInput, состояние не меняется:
// пользователю повторяется тот же вопрос
func ApplyAnswer(sess *models.Session, answer string) (string, error) {
	answer = strings.TrimSpace(answer)

	switch sess.State {
	case models.StateAwaitWeight:
		value, err := parsePositiveInt(answer)
		if err != nil {
			return sess.State, err
		}
		sess.Profile.Weight = value
		sess.State = models.StateAwaitHeight
	case models.StateAwaitHeight:
		value, err := parsePositiveInt(answer)
		if err != nil {
			return sess.State, err
		}
		sess.Profile.Height = value
		sess.State = models.StateAwaitAge
	case models.StateAwaitAge:
		value, err := parsePositiveInt(answer)
		if err != nil {
			return sess.State, err
		}
		sess.Profile.Age = value
		sess.State = models.StateAwaitActivity
	case models.StateAwaitActivity:
		// Ноль минут активности — допустимое значение
		value, err := strconv.Atoi(answer)
		if err != nil || value < 0 {
			return sess.State, fmt.Errorf("минуты активности: %w", errvalues.ErrInvalidInput)
		}
		sess.Profile.Activity = value
		sess.State = models.StateAwaitCity
	case models.StateAwaitCity:
		if answer == "" {
			return sess.State, fmt.Errorf("город не указан: %w", errvalues.ErrInvalidInput)
		}
		sess.Profile.City = answer
		sess.State = models.StateDone
	default:
		return sess.State, fmt.Errorf("неожиданное состояние сессии %q: %w", sess.State, errvalues.ErrInvalidInput)
	}
	return sess.State, nil
}

func parsePositiveInt(answer string) (int, error) {
	value, err := strconv.Atoi(answer)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("ожидается положительное число: %w", errvalues.ErrInvalidInput)
	}
	return value, nil
}
