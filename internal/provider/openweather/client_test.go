package openweather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/karinaaa-ed/HealthTrackingBot/internal/errvalues"
)

func TestCurrentTemperature(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("ожидались метрические единицы, получено %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "Berlin" {
			t.Errorf("ожидался город Berlin, получено %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main": {"temp": 27.3}}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	temp, err := c.CurrentTemperature(context.Background(), "Berlin")
	if err != nil {
		t.Fatalf("запрос температуры: %v", err)
	}
	if temp != 27.3 {
		t.Fatalf("ожидалось 27.3, получено %v", temp)
	}
}

func TestCurrentTemperatureUnknownCity(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	_, err := c.CurrentTemperature(context.Background(), "Nowhere")
	if !errors.Is(err, errvalues.ErrNotFound) {
		t.Fatalf("ожидалась ошибка ErrNotFound, получено %v", err)
	}
}

func TestCurrentTemperatureServerError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	_, err := c.CurrentTemperature(context.Background(), "Berlin")
	if !errors.Is(err, errvalues.ErrUpstream) {
		t.Fatalf("ожидалась ошибка ErrUpstream, получено %v", err)
	}
}
