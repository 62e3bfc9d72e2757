package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// ShimmerState animates a highlight sweeping across the selected row's
// technology name. Falls back to a static accent color when the
// terminal has no truecolor or motion is disabled.
type ShimmerState struct {
	center     float64
	lastUpdate time.Time
	active     bool
	paused     bool
	pauseStart time.Time
	truecolor  bool

	speed      time.Duration // time between animation steps
	widthRatio float64       // highlight width as a fraction of the text
	cycle      time.Duration // one full sweep
	pause      time.Duration // rest between sweeps
}

// NewShimmerState creates a shimmer with the default timing.
func NewShimmerState() *ShimmerState {
	return &ShimmerState{
		lastUpdate: time.Now(),
		active:     true,
		truecolor:  os.Getenv("COLORTERM") == "truecolor",
		speed:      100 * time.Millisecond,
		widthRatio: 0.25,
		cycle:      1800 * time.Millisecond,
		pause:      500 * time.Millisecond,
	}
}

// SetActive enables or disables the animation.
func (s *ShimmerState) SetActive(active bool) {
	s.active = active
}

// Reset restarts the sweep; call when the selection changes.
func (s *ShimmerState) Reset() {
	s.center = 0
	s.paused = false
	s.lastUpdate = time.Now()
}

// ShouldTick reports whether the caller needs to keep sending ticks.
func (s *ShimmerState) ShouldTick() bool {
	return s.active
}

// TickInterval is the interval for tea.Tick commands.
func (s *ShimmerState) TickInterval() time.Duration {
	return s.speed
}

func (s *ShimmerState) step(visibleLen int) {
	now := time.Now()
	if now.Sub(s.lastUpdate) < s.speed || visibleLen <= 0 {
		return
	}
	if s.paused {
		if now.Sub(s.pauseStart) >= s.pause {
			s.paused = false
			s.center = -float64(visibleLen) * s.widthRatio
		}
		s.lastUpdate = now
		return
	}

	ticksPerCycle := float64(s.cycle) / float64(s.speed)
	distance := float64(visibleLen) * (1.0 + 2.0*s.widthRatio)
	s.center += distance / ticksPerCycle

	max := float64(visibleLen) * (1.0 + s.widthRatio)
	if s.center >= max {
		s.paused = true
		s.pauseStart = now
		s.center = max
	}
	s.lastUpdate = now
}

// Render renders text with the shimmer highlight, truncated to maxWidth.
func (s *ShimmerState) Render(text string, maxWidth int) string {
	if len(text) > maxWidth && maxWidth > 3 {
		text = text[:maxWidth-3] + "..."
	}
	if len(text) == 0 {
		return ""
	}
	s.step(len(text))

	if !s.active || !s.truecolor {
		// Static accent highlight.
		return fmt.Sprintf("\033[38;2;167;139;250m%s\033[0m", text)
	}

	// Gaussian blend from the base grey to a light violet around center.
	baseR, baseG, baseB := 177, 184, 199    // #B1B8C7
	hiR, hiG, hiB := 234, 230, 255          // #EAE6FF
	sigma := s.widthRatio * float64(len(text)) / 2.0
	if sigma < 1.0 {
		sigma = 1.0
	}

	var b strings.Builder
	for i, char := range text {
		dx := float64(i) - s.center
		w := math.Exp(-(dx * dx) / (2 * sigma * sigma))
		r := int(float64(baseR)*(1-w) + float64(hiR)*w)
		g := int(float64(baseG)*(1-w) + float64(hiG)*w)
		bl := int(float64(baseB)*(1-w) + float64(hiB)*w)
		fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%c", r, g, bl, char)
	}
	b.WriteString("\033[0m")
	return b.String()
}
