package viz

import (
	"math"

	"github.com/san-kum/starlab/internal/particle"
	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

// Visibility toggles, one per scene element. Rendering only; the
// simulation underneath never notices.
const (
	TogglePrimary   = iota // first particle field of each body
	ToggleCore             // central body and glow
	ToggleSecondary        // remaining particle fields
	ToggleGeometry         // accretion disk and jets
	ToggleBeam             // pulsar beam
	toggleCount
)

// Scene draws body views onto a canvas through a camera. The camera
// drifts slowly around the scene until the user takes the wheel.
type Scene struct {
	Camera *Camera

	show  [toggleCount]bool
	drift bool
}

func NewScene() *Scene {
	s := &Scene{Camera: NewCamera(), drift: true}
	for i := range s.show {
		s.show[i] = true
	}
	return s
}

func (s *Scene) Toggle(i int) {
	if i >= 0 && i < toggleCount {
		s.show[i] = !s.show[i]
	}
}

func (s *Scene) Shown(i int) bool {
	return i >= 0 && i < toggleCount && s.show[i]
}

// StopDrift hands camera control to the user.
func (s *Scene) StopDrift() { s.drift = false }

// Advance moves the idle camera drift.
func (s *Scene) Advance(dt float64) {
	if s.drift {
		s.Camera.RotY += 0.05 * dt
	}
}

// Render clears the canvas and draws every view in order, underlays
// first, so a fading body sits behind its successor.
func (s *Scene) Render(c *Canvas, views []*telemetry.BodyView) {
	c.Clear()
	sw, sh := c.SubWidth(), c.SubHeight()

	for _, v := range views {
		if v == nil {
			continue
		}
		s.renderBody(c, v, sw, sh)
	}
}

func (s *Scene) renderBody(c *Canvas, v *telemetry.BodyView, sw, sh int) {
	for idx, f := range v.Fields {
		toggle := TogglePrimary
		if idx > 0 {
			toggle = ToggleSecondary
		}
		if s.show[toggle] {
			s.renderField(c, f, v.Opacity, sw, sh)
		}
	}

	hasHorizon := v.HorizonR > 0
	if s.show[ToggleGeometry] && hasHorizon {
		s.renderDisk(c, v, sw, sh, false)
		s.renderJets(c, v, sw, sh)
	}

	if s.show[ToggleCore] {
		s.renderCore(c, v, sw, sh)
	}

	// The near half of the disk passes in front of the horizon.
	if s.show[ToggleGeometry] && hasHorizon {
		s.renderDisk(c, v, sw, sh, true)
	}

	if s.show[ToggleBeam] && v.BeamLength > 0 {
		s.renderBeam(c, v, sw, sh)
	}

	if v.Flash > 0.02 {
		s.renderFlash(c, v.Flash*v.Opacity, sw, sh)
	}
}

func (s *Scene) renderField(c *Canvas, f *particle.Field, alpha float64, sw, sh int) {
	if f == nil || alpha <= 0 {
		return
	}

	pos := f.Positions()
	col := f.Colors()
	states := f.States()

	for i := range pos {
		if states[i] != particle.Free && states[i] != particle.Stuck {
			continue
		}
		if alpha < 1 && hash01(i) >= alpha {
			continue
		}
		x, y, _, ok := s.Camera.Project(pos[i], sw, sh)
		if !ok {
			continue
		}
		c.Set(x, y, classify(col[i], alpha))
	}
}

func (s *Scene) renderCore(c *Canvas, v *telemetry.BodyView, sw, sh int) {
	if v.Radius <= 0 && v.HorizonR <= 0 {
		return
	}

	cx, cy, scale, _ := s.Camera.Project(v.Center, sw, sh)
	if scale <= 0 {
		return
	}

	if v.HorizonR > 0 {
		// The horizon eats everything behind it; only the photon
		// ring marks the edge.
		hr := int(v.HorizonR * scale)
		c.BlotCircle(cx, cy, hr)
		c.Ring(cx, cy, hr+1, ClassHot)
		return
	}

	r := int(v.Radius * scale)
	class := classify(v.Color, v.Opacity)
	c.FillCircle(cx, cy, r, class)

	if v.Glow > 0.3 {
		c.Ring(cx, cy, r+1, ClassWarm)
	}
	if v.Glow > 0.7 {
		c.Ring(cx, cy, r+2, ClassDim)
	}
}

func (s *Scene) renderDisk(c *Canvas, v *telemetry.BodyView, sw, sh int, nearOnly bool) {
	if v.DiskOuter <= 0 || v.DiskAlpha <= 0 {
		return
	}

	centerZ := s.Camera.RotatePoint(v.Center).Z
	radii := []float64{v.DiskInner, (v.DiskInner + v.DiskOuter) / 2, v.DiskOuter}
	const steps = 72

	for ri, r := range radii {
		for i := 0; i < steps; i++ {
			if v.DiskAlpha < 1 && hash01(ri*steps+i) >= v.DiskAlpha {
				continue
			}
			a := 2 * math.Pi * float64(i) / float64(steps)
			p := v.Center.Add(stellar.Vec3{X: r * math.Cos(a), Z: r * math.Sin(a)})
			if nearOnly != (s.Camera.RotatePoint(p).Z > centerZ) {
				continue
			}
			x, y, _, ok := s.Camera.Project(p, sw, sh)
			if ok {
				c.Set(x, y, ClassWarm)
			}
		}
	}
}

func (s *Scene) renderJets(c *Canvas, v *telemetry.BodyView, sw, sh int) {
	if v.JetLength <= 0 || v.JetAlpha <= 0 {
		return
	}

	const segments = 8
	for dir := -1.0; dir <= 1; dir += 2 {
		for seg := 0; seg < segments; seg++ {
			if v.JetAlpha < 1 && hash01(seg*7+int(dir)) >= v.JetAlpha {
				continue
			}
			y0 := v.JetLength * float64(seg) / segments
			y1 := v.JetLength * float64(seg+1) / segments
			p0 := v.Center.Add(stellar.Vec3{Y: dir * y0})
			p1 := v.Center.Add(stellar.Vec3{Y: dir * y1})
			s.line(c, p0, p1, ClassCool, sw, sh)
		}
	}
}

func (s *Scene) renderBeam(c *Canvas, v *telemetry.BodyView, sw, sh int) {
	// Beams tilt off the spin axis and sweep with the stored azimuth.
	dir := stellar.Vec3{
		X: math.Cos(v.BeamAngle),
		Y: 0.35,
		Z: math.Sin(v.BeamAngle),
	}.Normalize()

	tip := v.Center.Add(dir.Scale(v.BeamLength))
	back := v.Center.Sub(dir.Scale(v.BeamLength))
	s.line(c, v.Center, tip, ClassHot, sw, sh)
	s.line(c, v.Center, back, ClassHot, sw, sh)
}

func (s *Scene) renderFlash(c *Canvas, density float64, sw, sh int) {
	if density > 1 {
		density = 1
	}
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			if hash01(y*sw+x) < density {
				c.Set(x, y, ClassHot)
			}
		}
	}
}

func (s *Scene) line(c *Canvas, p0, p1 stellar.Vec3, class uint8, sw, sh int) {
	x0, y0, s0, _ := s.Camera.Project(p0, sw, sh)
	x1, y1, s1, _ := s.Camera.Project(p1, sw, sh)
	if s0 <= 0 || s1 <= 0 {
		return
	}
	c.DrawLine(x0, y0, x1, y1, class)
}

// classify buckets a particle color into a palette class by its lit
// brightness and temperature.
func classify(col stellar.RGB, alpha float64) uint8 {
	lum := (0.3*col.R + 0.59*col.G + 0.11*col.B) * alpha
	switch {
	case lum < 0.15:
		return ClassDim
	case col.B > col.R+0.08:
		return ClassCool
	case lum > 0.75:
		return ClassHot
	default:
		return ClassWarm
	}
}

// hash01 scatters an index into [0, 1) for deterministic dithering.
func hash01(i int) float64 {
	return float64(uint32(i)*2654435761%1024) / 1024
}
