// Package camera provides the orbital camera that drives the viewer.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement rates and limits. Angles are radians, distances world units.
const (
	RotateSpeed float32 = 2.0 // radians per second
	ZoomSpeed   float32 = 5.0 // units per second

	MinDistance float32 = 0.5
	MaxDistance float32 = 20.0

	maxElevation float32 = 89.0 * math32.Pi / 180.0 // just short of vertical
)

// Orbit is the complete state of an orbital camera: spherical coordinates
// around a target point. It is a plain value; Update returns the next
// state instead of mutating, so the frame loop stays the sole owner.
type Orbit struct {
	// Target is the point the camera looks at and orbits around.
	Target mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // distance from target
	Azimuth   float32 // horizontal angle (radians), unbounded
	Elevation float32 // vertical angle (radians), clamped to +/-89 degrees
}

// NewOrbit returns the startup camera: close to the origin, level with it.
func NewOrbit() Orbit {
	return Orbit{
		Distance:  0.5,
		Azimuth:   0.0,
		Elevation: 0.0,
	}
}

// Intents captures which camera controls are held during a frame. Any
// combination may be active at once; opposing pairs simply cancel out.
type Intents struct {
	RotateLeft  bool
	RotateRight bool
	RotateUp    bool
	RotateDown  bool
	ZoomIn      bool
	ZoomOut     bool
}

// Update advances the orbit by dt seconds of the given held intents and
// returns the clamped result. The receiver is not modified.
func (o Orbit) Update(in Intents, dt float32) Orbit {
	if in.RotateLeft {
		o.Azimuth -= RotateSpeed * dt
	}
	if in.RotateRight {
		o.Azimuth += RotateSpeed * dt
	}
	if in.RotateUp {
		o.Elevation += RotateSpeed * dt
	}
	if in.RotateDown {
		o.Elevation -= RotateSpeed * dt
	}
	if in.ZoomIn {
		o.Distance -= ZoomSpeed * dt
	}
	if in.ZoomOut {
		o.Distance += ZoomSpeed * dt
	}

	// Clamp distance
	if o.Distance < MinDistance {
		o.Distance = MinDistance
	}
	if o.Distance > MaxDistance {
		o.Distance = MaxDistance
	}

	// Clamp elevation
	if o.Elevation < -maxElevation {
		o.Elevation = -maxElevation
	}
	if o.Elevation > maxElevation {
		o.Elevation = maxElevation
	}

	return o
}

// EyePosition returns the camera position in world space. At zero azimuth
// and elevation the eye sits on the +Z axis looking back at the target.
func (o Orbit) EyePosition() mgl32.Vec3 {
	x := o.Distance * math32.Cos(o.Elevation) * math32.Sin(o.Azimuth)
	y := o.Distance * math32.Sin(o.Elevation)
	z := o.Distance * math32.Cos(o.Elevation) * math32.Cos(o.Azimuth)

	return o.Target.Add(mgl32.Vec3{x, y, z})
}

// ViewMatrix returns the view matrix for this camera.
func (o Orbit) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(o.EyePosition(), o.Target, mgl32.Vec3{0, 1, 0})
}
