package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/director"
	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	historyLen    = 600
	chartLen      = 120
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	debugStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Sound is the slice of the audio engine the view drives. A nil Sound
// plays nothing.
type Sound interface {
	SetIntensity(v float64)
}

// Model runs one star interactively: a fixed frame clock advances the
// director, the scene draws the current views, and the keyboard pokes
// at time, camera and layers without ever touching the physics.
type Model struct {
	cfg   *config.Config
	dir   *director.Director
	scene *Scene

	canvas *Canvas
	hist   *telemetry.History
	sound  Sound
	fps    int

	width, height int
	showDebug     bool
	showHelp      bool
	recording     bool
	frames        []*image.Paletted
}

// NewModel wires a director into the TUI. fps clamps to a sane range;
// sound may be nil.
func NewModel(cfg *config.Config, dir *director.Director, sound Sound, fps int) Model {
	if fps < 5 {
		fps = 5
	}
	if fps > 120 {
		fps = 120
	}
	return Model{
		cfg:    cfg,
		dir:    dir,
		scene:  NewScene(),
		canvas: NewCanvas(defaultWidth, defaultHeight),
		hist:   telemetry.NewHistory(0.25, historyLen),
		sound:  sound,
		fps:    fps,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the lifecycle one frame per
// tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.dir.TogglePause()
		case "+", "=":
			m.dir.SetTimeScale(m.dir.TimeScale() * 2)
		case "-", "_":
			m.dir.SetTimeScale(m.dir.TimeScale() / 2)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "d":
			m.showDebug = !m.showDebug
		case "1", "2", "3", "4", "5":
			m.scene.Toggle(int(msg.String()[0] - '1'))
		case "up":
			m.scene.StopDrift()
			m.scene.Camera.RotateX(0.1)
		case "down":
			m.scene.StopDrift()
			m.scene.Camera.RotateX(-0.1)
		case "left":
			m.scene.StopDrift()
			m.scene.Camera.RotateY(-0.1)
		case "right":
			m.scene.StopDrift()
			m.scene.Camera.RotateY(0.1)
		case "z":
			m.scene.Camera.ZoomIn()
		case "Z":
			m.scene.Camera.ZoomOut()
		case "r":
			m.reset()
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		dt := 1.0 / float64(m.fps)
		before := m.dir.TotalElapsed()
		m.dir.Advance(dt)
		m.scene.Advance(dt)
		m.hist.Observe(m.dir.TotalElapsed()-before, m.dir.Snapshot())
		if m.sound != nil {
			m.sound.SetIntensity(m.soundIntensity())
		}
		m.scene.Render(m.canvas, m.dir.Views())
		if m.recording {
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cw := w - 50
	if cw < 40 {
		cw = 40
	}
	if cw > 140 {
		cw = 140
	}
	ch := h - 4
	if ch < 16 {
		ch = 16
	}
	if ch > 48 {
		ch = 48
	}
	if cw == m.width && ch == m.height {
		return
	}
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
}

// reset starts the same star over from its seed.
func (m *Model) reset() {
	sinks := m.dir.CueSinks()
	m.dir = director.New(m.cfg)
	for _, s := range sinks {
		m.dir.AddCueSink(s)
	}
	m.hist.Reset()
}

// soundIntensity folds phase progress and any detonation flash into the
// pad's filter drive.
func (m *Model) soundIntensity() float64 {
	flash := 0.0
	if views := m.dir.Views(); len(views) > 0 {
		flash = views[len(views)-1].Flash
	}
	return stellar.Clamp(m.dir.Progress()*0.6+flash, 0, 1)
}

// View renders the TUI interface.
func (m Model) View() string {
	snap := m.dir.Snapshot()
	canvasView := canvasStyle.Render(m.canvas.Render(CurrentTheme.Palette()))

	var s strings.Builder
	s.WriteString(headerStyle.Render("STARLAB") + "\n")

	status := "RUNNING"
	if snap.Paused {
		status = "PAUSED"
	}
	if m.recording {
		status += "  REC"
	}
	s.WriteString(fmt.Sprintf("%s  x%g  %dfps\n\n", status, snap.TimeScale, m.fps))

	s.WriteString(labelStyle.Render("Phase") + valueStyle.Render(snap.Phase.String()) + "\n")
	s.WriteString(labelStyle.Render("Progress") + valueStyle.Render(progressBar(snap.Progress)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", snap.TotalElapsed)) + "\n")
	s.WriteString(labelStyle.Render("Mass") + valueStyle.Render(fmt.Sprintf("%.4f", snap.ConsumedMass)) + "\n")
	s.WriteString(labelStyle.Render("Radius") + valueStyle.Render(fmt.Sprintf("%.2f", snap.StarRadius)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d free  %d stuck", snap.Free, snap.Stuck)) + "\n")
	if snap.RemnantKind != "" {
		s.WriteString(labelStyle.Render("Remnant") + valueStyle.Render(snap.RemnantKind) + "\n")
	}

	if mass := m.chartSeries(); len(mass) > 1 {
		chart := asciigraph.Plot(mass, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Core mass"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.showDebug {
		s.WriteString("\n" + debugStyle.Render(m.debugText(snap)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause +/-:Speed T:Theme D:Debug\n1-5:Layers R:Restart G:Record Q:Quit\n←→↑↓:Orbit Z:Zoom ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func (m Model) chartSeries() []float64 {
	mass := m.hist.Column(func(s telemetry.Sample) float64 { return s.Mass })
	if len(mass) > chartLen {
		mass = mass[len(mass)-chartLen:]
	}
	return mass
}

func (m Model) debugText(snap telemetry.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "consumed=%d active=%d capture=%.2f\n", snap.Consumed, snap.Active, snap.CaptureRadius)
	for i, v := range m.dir.Views() {
		fmt.Fprintf(&b, "view[%d] %s op=%.2f fields=%d", i, v.Phase, v.Opacity, len(v.Fields))
		if v.HorizonR > 0 {
			fmt.Fprintf(&b, " hor=%.2f disk=%.2f jet=%.2f", v.HorizonR, v.DiskAlpha, v.JetAlpha)
		}
		if v.BeamLength > 0 {
			fmt.Fprintf(&b, " beam=%.2f", v.BeamAngle)
		}
		if v.Flash > 0 {
			fmt.Fprintf(&b, " flash=%.2f", v.Flash)
		}
		b.WriteString("\n")
	}
	layers := []string{"1", "2", "3", "4", "5"}
	for i := range layers {
		if !m.scene.Shown(i) {
			layers[i] = "-"
		}
	}
	fmt.Fprintf(&b, "layers=%s theme=%s", strings.Join(layers, ""), CurrentTheme.Name)
	return b.String()
}

func progressBar(p float64) string {
	p = stellar.Clamp(p, 0, 1)
	const barWidth = 14
	filled := int(p * barWidth)
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]" + fmt.Sprintf(" %3.0f%%", p*100)
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  + / -    - Double/Halve time scale  ║
║  T        - Cycle themes             ║
║  D        - Toggle debug overlay     ║
║  1-5      - Toggle scene layers      ║
║  Arrows   - Orbit camera             ║
║  Z / Shift+Z - Zoom in/out           ║
║  R        - Restart this star        ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// gifPalette maps canvas color classes onto a tiny indexed palette.
var gifPalette = color.Palette{
	color.Black,
	color.RGBA{60, 60, 80, 255},
	color.RGBA{90, 140, 230, 255},
	color.RGBA{235, 150, 60, 255},
	color.White,
}

// captureFrame rasterizes the braille grid into a paletted image, one
// colored block per lit dot.
func (m *Model) captureFrame() {
	const charW, charH = 8, 16
	const dotW, dotH = charW / 2, charH / 4
	imgW, imgH := m.width*charW, m.height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), gifPalette)

	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			r := m.canvas.Grid[row][col]
			if r <= brailleBase {
				continue
			}
			pattern := int(r - brailleBase)
			idx := m.canvas.class[row][col]
			if idx == ClassNone || int(idx) >= len(gifPalette) {
				idx = uint8(len(gifPalette) - 1)
			}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	delay := 100 / m.fps
	if delay < 2 {
		delay = 2
	}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create("starlab.gif")
	if err != nil {
		return
	}
	defer f.Close()
	gif.EncodeAll(f, &anim)
}
