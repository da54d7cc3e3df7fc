// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/midgard-terrain/pkg/math"
)

var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// FlyCamera is a free-flying first person camera. It drives the terrain
// viewer: its XZ position is the viewer position handed to the streamer.
type FlyCamera struct {
	Position math.Vec3

	Yaw   float32 // radians, 0 looks down -Z
	Pitch float32 // radians, positive looks up

	MinPitch float32
	MaxPitch float32

	// Speed is in world units per second.
	Speed           float32
	BoostFactor     float32
	LookSensitivity float32

	// Ground clearance kept by FollowGround.
	Clearance float32

	FOV  float32 // vertical, radians
	Near float32
	Far  float32
}

// NewFlyCamera creates a fly camera at pos with default settings.
func NewFlyCamera(pos math.Vec3) *FlyCamera {
	return &FlyCamera{
		Position:        pos,
		Pitch:           -0.3,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		Speed:           120,
		BoostFactor:     4,
		LookSensitivity: 0.003,
		Clearance:       2,
		FOV:             float32(60 * gomath.Pi / 180),
		Near:            0.5,
		Far:             5000,
	}
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() math.Vec3 {
	cp := float32(gomath.Cos(float64(c.Pitch)))
	return math.Vec3{
		X: float32(gomath.Sin(float64(c.Yaw))) * cp,
		Y: float32(gomath.Sin(float64(c.Pitch))),
		Z: -float32(gomath.Cos(float64(c.Yaw))) * cp,
	}
}

// Right returns the unit right direction on the XZ plane.
func (c *FlyCamera) Right() math.Vec3 {
	return math.Vec3{
		X: float32(gomath.Cos(float64(c.Yaw))),
		Z: float32(gomath.Sin(float64(c.Yaw))),
	}
}

// HandleLook turns the camera by a relative mouse motion.
func (c *FlyCamera) HandleLook(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.LookSensitivity
	c.Pitch = math.Clamp(c.Pitch-deltaY*c.LookSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleMovement moves the camera along its view axes. forward, right and up
// are in [-1, 1]; dt is the frame time in seconds.
func (c *FlyCamera) HandleMovement(forward, right, up float32, boost bool, dt float32) {
	speed := c.Speed * dt
	if boost {
		speed *= c.BoostFactor
	}

	move := c.Forward().Scale(forward).
		Add(c.Right().Scale(right)).
		Add(worldUp.Scale(up))
	if move.Length() == 0 {
		return
	}
	c.Position = c.Position.Add(move.Normalize().Scale(speed))
}

// FollowGround lifts the camera so it stays Clearance above ground.
func (c *FlyCamera) FollowGround(ground float32) {
	if floor := ground + c.Clearance; c.Position.Y < floor {
		c.Position.Y = floor
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), worldUp)
}

// ProjectionMatrix returns the perspective projection for the given aspect.
func (c *FlyCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// OrbitCamera orbits around a center point. The map editor uses it to
// inspect the preview mesh.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        300.0,
		RotationX:       0.6,
		MinDistance:     20.0,
		MaxDistance:     2000.0,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cx := float64(c.RotationX)
	cy := float64(c.RotationY)
	return c.Center.Add(math.Vec3{
		X: c.Distance * float32(gomath.Cos(cx)*gomath.Sin(cy)),
		Y: c.Distance * float32(gomath.Sin(cx)),
		Z: c.Distance * float32(gomath.Cos(cx)*gomath.Cos(cy)),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, worldUp)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centres the camera on a box and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(bmin, bmax [3]float32) {
	lo, hi := math.FromArray(bmin), math.FromArray(bmax)
	c.Center = lo.Add(hi).Scale(0.5)

	size := max(hi.X-lo.X, hi.Z-lo.Z)
	c.Distance = math.Clamp(size*1.2, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.6
	c.RotationY = 0
}
