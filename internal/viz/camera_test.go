package viz

import (
	"math"
	"testing"

	"github.com/san-kum/starlab/internal/stellar"
)

// 144x144 dots with ViewRadius 72 puts the world-to-dot scale at
// exactly 1, so projections land on whole coordinates.
const testDim = 144

func TestProject_CenterMapsToScreenCenter(t *testing.T) {
	cam := NewCamera()
	x, y, scale, ok := cam.Project(stellar.Vec3{}, testDim, testDim)
	if !ok {
		t.Fatal("origin projected off screen")
	}
	if x != testDim/2 || y != testDim/2 {
		t.Errorf("Project(origin) = (%d,%d), want (%d,%d)", x, y, testDim/2, testDim/2)
	}
	if scale != 1 {
		t.Errorf("scale = %v, want 1", scale)
	}
}

func TestProject_OffsetsAndYFlip(t *testing.T) {
	cam := NewCamera()

	x, y, _, ok := cam.Project(stellar.Vec3{X: 30, Y: 10}, testDim, testDim)
	if !ok {
		t.Fatal("point projected off screen")
	}
	if x != 102 {
		t.Errorf("x = %d, want 102", x)
	}
	// +Y in world is up, which is a smaller row index on screen.
	if y != 62 {
		t.Errorf("y = %d, want 62", y)
	}
}

func TestProject_PerspectiveShrinksDistantPoints(t *testing.T) {
	cam := NewCamera()
	_, _, near, _ := cam.Project(stellar.Vec3{}, testDim, testDim)
	_, _, far, _ := cam.Project(stellar.Vec3{Z: -96}, testDim, testDim)
	if far >= near {
		t.Errorf("far scale %v not smaller than near scale %v", far, near)
	}
	if far != 0.625 {
		t.Errorf("scale at z=-96 = %v, want 0.625", far)
	}
}

func TestProject_BehindCameraRejected(t *testing.T) {
	cam := NewCamera()
	_, _, scale, ok := cam.Project(stellar.Vec3{Z: 200}, testDim, testDim)
	if ok || scale != 0 {
		t.Errorf("Project(behind) = ok=%v scale=%v, want rejected", ok, scale)
	}
}

func TestProject_OffScreenStillReturnsCoords(t *testing.T) {
	cam := NewCamera()
	x, _, _, ok := cam.Project(stellar.Vec3{X: 500}, testDim, testDim)
	if ok {
		t.Error("far off-axis point reported on screen")
	}
	if x <= testDim {
		t.Errorf("x = %d, want past the right edge", x)
	}
}

func TestProjectRadius(t *testing.T) {
	cam := NewCamera()
	if got := cam.ProjectRadius(stellar.Vec3{}, 10, testDim, testDim); got != 10 {
		t.Errorf("ProjectRadius = %d, want 10", got)
	}
}

func TestZoomClamps(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 30; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom != 10 {
		t.Errorf("Zoom after repeated ZoomIn = %v, want 10", cam.Zoom)
	}
	for i := 0; i < 60; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom != 0.1 {
		t.Errorf("Zoom after repeated ZoomOut = %v, want 0.1", cam.Zoom)
	}
}

func TestRotatePoint_QuarterYaw(t *testing.T) {
	cam := NewCamera()
	cam.RotY = math.Pi / 2

	got := cam.RotatePoint(stellar.Vec3{X: 1})
	want := stellar.Vec3{Z: -1}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 || math.Abs(got.Z-want.Z) > 1e-9 {
		t.Errorf("RotatePoint = %+v, want %+v", got, want)
	}
}

func TestRotatePoint_IdentityWhenUnrotated(t *testing.T) {
	cam := NewCamera()
	p := stellar.Vec3{X: 3, Y: -2, Z: 7}
	if got := cam.RotatePoint(p); got != p {
		t.Errorf("RotatePoint = %+v, want unchanged %+v", got, p)
	}
}
