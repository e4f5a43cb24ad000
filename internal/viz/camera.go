package viz

import (
	"math"

	"github.com/san-kum/starlab/internal/stellar"
)

// Camera projects world space onto the dot grid: rotate, perspective
// divide, then scale so a sphere of ViewRadius world units fills the
// shorter screen axis.
type Camera struct {
	Distance   float64 // eye distance along +Z, world units
	ViewRadius float64 // world radius mapped to the half-screen
	Near       float64

	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 160, ViewRadius: 72, Near: 0.5, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p stellar.Vec3) stellar.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a world point to dot coordinates. Returns x, y, the
// perspective factor at that depth, and whether the point is on screen.
func (c *Camera) Project(p stellar.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot.Z)

	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	scale := c.Zoom * persp * minDim / (2 * c.ViewRadius)

	sx := int(rot.X*scale) + sw/2
	sy := int(-rot.Y*scale) + sh/2
	return sx, sy, scale, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// ProjectRadius maps a world-space radius at p's depth to dots.
func (c *Camera) ProjectRadius(p stellar.Vec3, r float64, sw, sh int) int {
	_, _, scale, _ := c.Project(p, sw, sh)
	return int(r * scale)
}
