package locales

import (
	_ "embed"
	"encoding/json"
	"log"
)

//go:embed locales.json
var localesJSON []byte

// Locales содержит все текстовые строки из locales.json
type Locales struct {
	Common   Common   `json:"common"`
	Profile  Profile  `json:"profile"`
	Water    Water    `json:"water"`
	Food     Food     `json:"food"`
	Workout  Workout  `json:"workout"`
	Progress Progress `json:"progress"`
	Charts   Charts   `json:"charts"`
}

type Common struct {
	Start          string `json:"start"`
	Help           string `json:"help"`
	UnknownCommand string `json:"unknown_command"`
	NoProfile      string `json:"no_profile"`
}

type Profile struct {
	AskWeight          string `json:"ask_weight"`
	AskHeight          string `json:"ask_height"`
	AskAge             string `json:"ask_age"`
	AskActivity        string `json:"ask_activity"`
	AskCity            string `json:"ask_city"`
	BadNumber          string `json:"bad_number"`
	BadCity            string `json:"bad_city"`
	Summary            string `json:"summary"`
	TemperatureUnknown string `json:"temperature_unknown"`
	WeightUpdated      string `json:"weight_updated"`
	UpdateWeightUsage  string `json:"update_weight_usage"`
	ResetDone          string `json:"reset_done"`
	ResetMissing       string `json:"reset_missing"`
}

type Water struct {
	Usage  string `json:"usage"`
	Logged string `json:"logged"`
}

type Food struct {
	Usage       string `json:"usage"`
	Found       string `json:"found"`
	Logged      string `json:"logged"`
	NotFound    string `json:"not_found"`
	BadGrams    string `json:"bad_grams"`
	LookupError string `json:"lookup_error"`
}

type Workout struct {
	Usage       string `json:"usage"`
	BadDuration string `json:"bad_duration"`
	Logged      string `json:"logged"`
	NotFound    string `json:"not_found"`
	LookupError string `json:"lookup_error"`
}

type Progress struct {
	Report string `json:"report"`
}

type Charts struct {
	Choose          string `json:"choose"`
	WaterButton     string `json:"water_button"`
	CaloriesButton  string `json:"calories_button"`
	WaterCaption    string `json:"water_caption"`
	CaloriesCaption string `json:"calories_caption"`
	RenderError     string `json:"render_error"`
}

var L *Locales

func init() {
	L = &Locales{}
	if err := json.Unmarshal(localesJSON, L); err != nil {
		log.Fatalf("Не удалось распарсить locales.json: %v", err)
	}
}

// Get возвращает указатель на локали
func Get() *Locales {
	return L
}
