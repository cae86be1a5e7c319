// Package charts рисует PNG-графики прогресса по воде и калориям.
package charts

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/karinaaa-ed/HealthTrackingBot/pkg/models"
)

const (
	chartWidth  = 640
	chartHeight = 320
)

type Renderer struct {
	face font.Face
}

// NewRenderer создаёт рендерер графиков. fontPath — путь к TTF-шрифту
// для подписей; при пустом пути используется встроенный растровый шрифт
func NewRenderer(fontPath string) (*Renderer, error) {
	if fontPath == "" {
		return &Renderer{face: basicfont.Face7x13}, nil
	}

	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать шрифт %s: %w", fontPath, err)
	}
	parsed, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("не удалось распарсить шрифт %s: %w", fontPath, err)
	}
	return &Renderer{face: truetype.NewFace(parsed, &truetype.Options{Size: 14})}, nil
}

type bar struct {
	label string
	value float64
	color string
}

// WaterChart — столбцы «выпито» и «осталось» в мл
func (r *Renderer) WaterChart(s models.Snapshot) ([]byte, error) {
	return r.barChart("Прогресс по воде (мл)", []bar{
		{label: "Выпито", value: float64(s.WaterConsumed), color: "#1f77b4"},
		{label: "Осталось", value: float64(s.WaterRemaining), color: "#ff7f0e"},
	})
}

// CalorieChart — столбцы «потреблено», «сожжено» и «осталось» в ккал.
// Остаток считается от баланса (потреблено минус сожжено) и floor'ится в 0
func (r *Renderer) CalorieChart(s models.Snapshot) ([]byte, error) {
	remaining := s.CalorieGoal - (s.CaloriesConsumed - s.CaloriesBurned)
	if remaining < 0 {
		remaining = 0
	}
	return r.barChart("Прогресс по калориям (ккал)", []bar{
		{label: "Потреблено", value: s.CaloriesConsumed, color: "#2ca02c"},
		{label: "Сожжено", value: s.CaloriesBurned, color: "#d62728"},
		{label: "Осталось", value: remaining, color: "#9467bd"},
	})
}

func (r *Renderer) barChart(title string, bars []bar) ([]byte, error) {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetFontFace(r.face)

	// Фон
	dc.SetHexColor("#ffffff")
	dc.Clear()

	const (
		marginTop    = 50.0
		marginBottom = 40.0
		marginSide   = 40.0
	)
	plotHeight := float64(chartHeight) - marginTop - marginBottom

	maxValue := 0.0
	for _, b := range bars {
		if b.value > maxValue {
			maxValue = b.value
		}
	}
	if maxValue == 0 {
		maxValue = 1 // все столбцы нулевые, рисуем пустую сетку
	}

	// Заголовок
	dc.SetHexColor("#000000")
	dc.DrawStringAnchored(title, chartWidth/2, marginTop/2, 0.5, 0.5)

	// Ось X
	baseline := float64(chartHeight) - marginBottom
	dc.SetLineWidth(1)
	dc.DrawLine(marginSide, baseline, float64(chartWidth)-marginSide, baseline)
	dc.Stroke()

	plotWidth := float64(chartWidth) - 2*marginSide
	slot := plotWidth / float64(len(bars))
	barWidth := slot * 0.6

	for i, b := range bars {
		x := marginSide + slot*float64(i) + (slot-barWidth)/2
		height := b.value / maxValue * plotHeight
		y := baseline - height

		dc.SetHexColor(b.color)
		dc.DrawRectangle(x, y, barWidth, height)
		dc.Fill()

		dc.SetHexColor("#000000")
		dc.DrawStringAnchored(b.label, x+barWidth/2, baseline+14, 0.5, 0.5)
		dc.DrawStringAnchored(formatValue(b.value), x+barWidth/2, y-10, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("не удалось закодировать график в PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
