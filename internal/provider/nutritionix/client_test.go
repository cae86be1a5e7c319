package nutritionix

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/errvalues"
)

func TestNaturalExercise(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-app-id"); got != "app" {
			t.Errorf("ожидался x-app-id app, получено %q", got)
		}
		if got := r.Header.Get("x-app-key"); got != "key" {
			t.Errorf("ожидался x-app-key key, получено %q", got)
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("не удалось разобрать тело запроса: %v", err)
		}
		if payload["query"] != "30 minutes of running" {
			t.Errorf("неожиданный query: %v", payload["query"])
		}
		if payload["gender"] != "male" {
			t.Errorf("неожиданный gender: %v", payload["gender"])
		}
		if payload["weight_kg"] != float64(70) {
			t.Errorf("неожиданный weight_kg: %v", payload["weight_kg"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"exercises": [{"name": "running", "nf_calories": 350.5}]}`))
	}))
	defer ts.Close()

	c := &Client{AppID: "app", APIKey: "key", BaseURL: ts.URL, HTTPClient: ts.Client()}

	exercises, err := c.NaturalExercise(context.Background(), ExerciseRequest{
		Query:    "30 minutes of running",
		Gender:   "male",
		WeightKg: 70,
		HeightCm: 175,
		Age:      30,
	})
	if err != nil {
		t.Fatalf("оценка тренировки: %v", err)
	}
	if len(exercises) != 1 || exercises[0].Calories != 350.5 {
		t.Fatalf("неожиданный результат: %+v", exercises)
	}
}

func TestNaturalExerciseEmptyResult(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"exercises": []}`))
	}))
	defer ts.Close()

	c := &Client{AppID: "app", APIKey: "key", BaseURL: ts.URL, HTTPClient: ts.Client()}

	_, err := c.NaturalExercise(context.Background(), ExerciseRequest{Query: "30 minutes of levitation"})
	if !errors.Is(err, errvalues.ErrNotFound) {
		t.Fatalf("ожидалась ошибка ErrNotFound, получено %v", err)
	}
}

func TestNaturalExerciseBadStatus(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := &Client{AppID: "app", APIKey: "bad", BaseURL: ts.URL, HTTPClient: ts.Client()}

	_, err := c.NaturalExercise(context.Background(), ExerciseRequest{Query: "30 minutes of running"})
	if !errors.Is(err, errvalues.ErrUpstream) {
		t.Fatalf("ожидалась ошибка ErrUpstream, получено %v", err)
	}
}
