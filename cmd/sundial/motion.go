package main

import "github.com/charmbracelet/harmonica"

// motionAxis is one camera control whose velocity springs back to rest
// once its key stops repeating.
type motionAxis struct {
	Velocity float64
	accel    float64 // spring velocity of Velocity itself
	spring   harmonica.Spring
}

func newMotionAxis(fps int) motionAxis {
	return motionAxis{
		// Critically damped, so the camera settles without overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Push sets the axis moving at v units per second.
func (a *motionAxis) Push(v float64) {
	a.Velocity = v
}

// Step returns how far the axis moves over dt seconds and decays the
// velocity by one spring tick.
func (a *motionAxis) Step(dt float64) float64 {
	d := a.Velocity * dt
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	return d
}

// Stop halts the axis immediately.
func (a *motionAxis) Stop() {
	a.Velocity, a.accel = 0, 0
}
