package raytrace

import "time"

// Quality selects the render scale. Higher is finer.
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
)

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low (4x)"
	case QualityMedium:
		return "medium (2x)"
	case QualityHigh:
		return "high (1x)"
	default:
		return "unknown"
	}
}

// ScaleForQuality maps a quality level to a render scale.
func ScaleForQuality(q Quality) int {
	switch {
	case q <= QualityLow:
		return 4
	case q == QualityMedium:
		return 2
	default:
		return 1
	}
}

// Auto quality tuning.
const (
	LowFPS           = 20
	HighFPS          = 45
	fpsWindow        = 10
	fpsMinSamples    = 5
	fpsCheckInterval = 500 * time.Millisecond
)

// AutoQuality adjusts the quality level from a moving FPS average. When
// disabled, Level always equals the manual choice. When enabled, a slow
// average steps the level down and a fast one steps it back up, but never
// above the manual level.
type AutoQuality struct {
	Enabled bool
	manual  Quality
	level   Quality
	history []float64
	elapsed time.Duration
}

// NewAutoQuality starts disabled at the given manual level.
func NewAutoQuality(manual Quality) *AutoQuality {
	return &AutoQuality{manual: manual, level: manual}
}

// Level is the quality to render the next frame at.
func (a *AutoQuality) Level() Quality { return a.level }

// Manual is the level the user picked.
func (a *AutoQuality) Manual() Quality { return a.manual }

// SetManual records the user's choice. It takes effect immediately unless
// auto tuning is on, in which case it only caps future step-ups.
func (a *AutoQuality) SetManual(q Quality) {
	a.manual = q
	if !a.Enabled {
		a.level = q
	}
}

// Toggle flips auto tuning and returns the new state. Turning it off
// restores the manual level.
func (a *AutoQuality) Toggle() bool {
	a.Enabled = !a.Enabled
	if !a.Enabled {
		a.level = a.manual
		a.history = a.history[:0]
		a.elapsed = 0
	}
	return a.Enabled
}

// Observe records the FPS of the last frame and the time it took, and
// returns the level for the next frame.
func (a *AutoQuality) Observe(fps float64, dt time.Duration) Quality {
	if !a.Enabled {
		return a.level
	}

	a.elapsed += dt
	a.history = append(a.history, fps)
	if len(a.history) > fpsWindow {
		a.history = a.history[1:]
	}
	if a.elapsed < fpsCheckInterval || len(a.history) < fpsMinSamples {
		return a.level
	}
	a.elapsed = 0

	var sum float64
	for _, f := range a.history {
		sum += f
	}
	avg := sum / float64(len(a.history))

	switch {
	case avg < LowFPS && a.level > QualityLow:
		a.level--
	case avg > HighFPS && a.level < a.manual:
		a.level++
	}
	return a.level
}
