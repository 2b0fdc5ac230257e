package view

// FPSCounter counts frames over each accumulated second of simulated time.
type FPSCounter struct {
	frames  int
	elapsed float64
	current int
}

// Tick records one frame of dt seconds and returns the latest full-second
// frame count.
func (f *FPSCounter) Tick(dt float64) int {
	f.frames++
	f.elapsed += dt
	if f.elapsed >= 1 {
		f.current = f.frames
		f.frames = 0
		f.elapsed = 0
	}
	return f.current
}

func (f *FPSCounter) FPS() int { return f.current }
