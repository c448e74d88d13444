// Package camera provides an orbit camera around the lattice cube and the
// ray math used to turn a screen position into a cell.
package camera

import "math"

// Vec3 is a float32 vector in world space (Y up).
type Vec3 struct {
	X, Y, Z float32
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float32) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Len() float32 { return float32(math.Sqrt(float64(a.Dot(a)))) }
func (a Vec3) Axis(i int) float32 { return [3]float32{a.X, a.Y, a.Z}[i] }
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{a.Y*b.Z - a.Z*b.Y, a.Z*b.X - a.X*b.Z, a.X*b.Y - a.Y*b.X}
}

// Normalize returns a unit vector, or the zero vector unchanged.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// Up is the world up axis.
var Up = Vec3{0, 1, 0}

// Camera orbits Target at Distance. Yaw and Pitch are in degrees; yaw 0
// looks down -Z, pitch is elevation above the XZ plane.
type Camera struct {
	Target   Vec3
	Yaw      float32
	Pitch    float32
	Distance float32

	MinDistance, MaxDistance float32

	// Vertical field of view in degrees
	Fovy float32

	ViewportW, ViewportH float32

	home struct{ yaw, pitch, distance float32 }
}

// Pitch limits keep the view matrix away from the poles.
const (
	MinPitch = -89
	MaxPitch = 89
)

// New creates a camera looking at the origin. The initial pose is what
// Reset returns to.
func New(viewportW, viewportH, yaw, pitch, distance, fovy float32) *Camera {
	c := &Camera{
		Yaw:         yaw,
		Pitch:       clamp(pitch, MinPitch, MaxPitch),
		Distance:    distance,
		MinDistance: distance / 4,
		MaxDistance: distance * 4,
		Fovy:        fovy,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
	}
	c.home.yaw, c.home.pitch, c.home.distance = c.Yaw, c.Pitch, c.Distance
	return c
}

// Position returns the eye position in world space.
func (c *Camera) Position() Vec3 {
	yaw := float64(c.Yaw) * math.Pi / 180
	pitch := float64(c.Pitch) * math.Pi / 180
	d := float64(c.Distance)
	off := Vec3{
		X: float32(d * math.Cos(pitch) * math.Sin(yaw)),
		Y: float32(d * math.Sin(pitch)),
		Z: float32(d * math.Cos(pitch) * math.Cos(yaw)),
	}
	return c.Target.Add(off)
}

// Forward returns the unit view direction.
func (c *Camera) Forward() Vec3 {
	return c.Target.Sub(c.Position()).Normalize()
}

// Orbit rotates the camera by the given angles in degrees.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dYaw), 360))
	if c.Yaw < 0 {
		c.Yaw += 360
	}
	c.Pitch = clamp(c.Pitch+dPitch, MinPitch, MaxPitch)
}

// ZoomBy scales the orbit distance by factor, clamped to the limits.
func (c *Camera) ZoomBy(factor float32) {
	c.Distance = clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// Resize updates the viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Reset returns to the pose the camera was created with.
func (c *Camera) Reset() {
	c.Yaw, c.Pitch, c.Distance = c.home.yaw, c.home.pitch, c.home.distance
}

// Ray returns the origin and unit direction of the pick ray through the
// screen point (sx, sy), with (0,0) at the top-left corner.
func (c *Camera) Ray(sx, sy float32) (origin, dir Vec3) {
	origin = c.Position()
	fwd := c.Target.Sub(origin).Normalize()
	right := fwd.Cross(Up).Normalize()
	up := right.Cross(fwd)

	tanHalf := float32(math.Tan(float64(c.Fovy) * math.Pi / 360))
	aspect := float32(1)
	if c.ViewportH > 0 {
		aspect = c.ViewportW / c.ViewportH
	}
	nx := (2*sx/c.ViewportW - 1) * aspect * tanHalf
	ny := (1 - 2*sy/c.ViewportH) * tanHalf

	dir = fwd.Add(right.Scale(nx)).Add(up.Scale(ny)).Normalize()
	return origin, dir
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
