package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Color is an RGBA colour.
type Color struct{ R, G, B, A uint8 }

var (
	BarBackground = Color{100, 100, 100, 255}
	BarGreen      = Color{0, 255, 0, 255}
	BarYellow     = Color{255, 255, 0, 255}
	BarRed        = Color{255, 0, 0, 255}
)

// HealthBar is the filled portion of a health bar of a given pixel width.
type HealthBar struct {
	Width int
	Fill  int
	Color Color
}

// NewHealthBar computes fill and colour for current/max health. Above 60% the
// bar is green, above 30% yellow, otherwise red.
func NewHealthBar(current, max, width int) HealthBar {
	ratio := 0.0
	if max > 0 {
		ratio = float64(current) / float64(max)
	}
	bar := HealthBar{Width: width, Fill: int(float64(width) * ratio)}
	switch {
	case ratio > 0.6:
		bar.Color = BarGreen
	case ratio > 0.3:
		bar.Color = BarYellow
	default:
		bar.Color = BarRed
	}
	return bar
}

// Overlay is the HUD content for one frame.
type Overlay struct {
	Bar      HealthBar
	Health   string
	FPS      string
	Position string
	Controls string
}

// HUD formats overlay labels for a locale.
type HUD struct {
	printer  *message.Printer
	barWidth int
}

// NewHUD returns a HUD formatting numbers for lang (a BCP 47 tag). An
// unparsable tag falls back to English.
func NewHUD(lang string, barWidth int) *HUD {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &HUD{printer: message.NewPrinter(tag), barWidth: barWidth}
}

func (h *HUD) Build(current, max, fps int, x, y float64) Overlay {
	return Overlay{
		Bar:      NewHealthBar(current, max, h.barWidth),
		Health:   h.printer.Sprintf("HP: %d/%d", current, max),
		FPS:      h.printer.Sprintf("FPS: %d", fps),
		Position: h.printer.Sprintf("Pos: (%.0f, %.0f)", x, y),
		Controls: "H - Damage  J - Heal",
	}
}
