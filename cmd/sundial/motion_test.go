package main

import "testing"

func TestMotionAxisDecays(t *testing.T) {
	a := newMotionAxis(30)
	a.Push(2)

	first := a.Step(0.1)
	if first != 0.2 {
		t.Errorf("first step = %v, want 0.2", first)
	}
	total := first
	for range 120 {
		total += a.Step(0.1)
	}
	if a.Velocity > 0.01 || a.Velocity < -0.01 {
		t.Errorf("velocity after 4s = %v, want near zero", a.Velocity)
	}
	if total <= first {
		t.Errorf("axis should keep gliding after the push, total = %v", total)
	}
}

func TestMotionAxisStop(t *testing.T) {
	a := newMotionAxis(30)
	a.Push(-5)
	a.Stop()
	if d := a.Step(1); d != 0 {
		t.Errorf("stopped axis moved %v", d)
	}
}
