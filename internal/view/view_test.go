package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraFollowClamps(t *testing.T) {
	for _, tc := range []struct {
		name  string
		x, y  float64
		wantX float64
		wantY float64
	}{
		{"centred", 1000, 700, 600, 400},
		{"top left corner", 10, 10, 0, 0},
		{"bottom right corner", 1990, 1490, 1200, 900},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(800, 600)
			c.Follow(tc.x, tc.y, 2000, 1500)
			assert.Equal(t, tc.wantX, c.X)
			assert.Equal(t, tc.wantY, c.Y)
		})
	}
}

func TestCameraScreenSpace(t *testing.T) {
	c := Camera{X: 100, Y: 50, Width: 800, Height: 600}
	sx, sy := c.ToScreen(432.7, 60)
	assert.Equal(t, 332, sx)
	assert.Equal(t, 10, sy)

	assert.True(t, c.Visible(50, 50, 64, 64))
	assert.False(t, c.Visible(0, 0, 100, 10), "touching edge is outside")
	assert.False(t, c.Visible(900, 100, 10, 10))
}

func TestHealthBar(t *testing.T) {
	for _, tc := range []struct {
		current, max int
		fill         int
		color        Color
	}{
		{100, 100, 200, BarGreen},
		{61, 100, 122, BarGreen},
		{60, 100, 120, BarYellow},
		{31, 100, 62, BarYellow},
		{30, 100, 60, BarRed},
		{0, 100, 0, BarRed},
		{5, 0, 0, BarRed},
	} {
		bar := NewHealthBar(tc.current, tc.max, 200)
		assert.Equal(t, tc.fill, bar.Fill, "%d/%d", tc.current, tc.max)
		assert.Equal(t, tc.color, bar.Color, "%d/%d", tc.current, tc.max)
	}
}

func TestHUDLabels(t *testing.T) {
	h := NewHUD("en", 200)
	o := h.Build(70, 100, 60, 400.4, 99.6)
	assert.Equal(t, "HP: 70/100", o.Health)
	assert.Equal(t, "FPS: 60", o.FPS)
	assert.Equal(t, "Pos: (400, 100)", o.Position)
	assert.Equal(t, BarGreen, o.Bar.Color)
	assert.Equal(t, 140, o.Bar.Fill)

	assert.Equal(t, "HP: 1,500/2,000", h.Build(1500, 2000, 0, 0, 0).Health)
}

func TestHUDBadLanguageFallsBack(t *testing.T) {
	o := NewHUD("!!", 10).Build(1, 2, 3, 0, 0)
	assert.Equal(t, "HP: 1/2", o.Health)
}

func TestFPSCounter(t *testing.T) {
	var f FPSCounter
	for i := 0; i < 59; i++ {
		assert.Zero(t, f.Tick(1.0/60))
	}
	// Float accumulation may need one more frame to reach a full second.
	n := f.Tick(1.0 / 60)
	if n == 0 {
		n = f.Tick(1.0 / 60)
	}
	assert.InDelta(t, 60, n, 1)
	assert.Equal(t, n, f.FPS())
}
