package main

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/scanline/pkg/math3d"
)

// spinAxis holds the angular velocity about one eye-space axis. A critically
// damped spring pulls the velocity back to zero.
type spinAxis struct {
	Velocity  float64 // Radians per frame
	velSpring harmonica.Spring
	velAccel  float64 // Spring's own velocity while animating Velocity toward 0
}

func newSpinAxis(fps int) spinAxis {
	return spinAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// step returns this frame's rotation angle and decays the velocity.
func (a *spinAxis) step() float64 {
	angle := a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	return angle
}

// spin accumulates the model orientation as a quaternion. Impulses rotate
// about the viewer's axes, whatever the current orientation.
type spin struct {
	Pitch, Yaw, Roll spinAxis
	Orientation      math3d.Quat
	fps              int
}

func newSpin(fps int) *spin {
	s := &spin{fps: fps}
	s.Reset()
	return s
}

// Update advances the orientation by one frame.
func (s *spin) Update() {
	dq := math3d.QuatFromAxisAngle(math3d.AxisX(), s.Pitch.step()).
		Mul(math3d.QuatFromAxisAngle(math3d.AxisY(), s.Yaw.step())).
		Mul(math3d.QuatFromAxisAngle(math3d.AxisZ(), s.Roll.step()))
	s.Orientation = dq.Mul(s.Orientation).Normalize()
}

// ApplyImpulse adds angular velocity in radians per frame.
func (s *spin) ApplyImpulse(pitch, yaw, roll float64) {
	s.Pitch.Velocity += pitch
	s.Yaw.Velocity += yaw
	s.Roll.Velocity += roll
}

// Reset stops the motion and restores the initial orientation.
func (s *spin) Reset() {
	s.Pitch = newSpinAxis(s.fps)
	s.Yaw = newSpinAxis(s.fps)
	s.Roll = newSpinAxis(s.fps)
	s.Orientation = math3d.QuatIdentity()
}
