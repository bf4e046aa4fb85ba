// Package frontend runs a machine in a window with keyboard input, video
// output and an overlay for machine faults.
package frontend

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/xochip/internal/render"
	"github.com/retroenv/xochip/internal/runner"
	"github.com/retroenv/xochip/internal/xochip"
	"golang.org/x/image/font/basicfont"
)

// layoutScale is the ratio of the logical screen to the machine display,
// it keeps the overlay font readable.
const layoutScale = 4

// KeyMap maps the host keyboard to the hexadecimal keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var KeyMap = map[ebiten.Key]uint8{
	ebiten.Key1: 0x1, ebiten.Key2: 0x2, ebiten.Key3: 0x3, ebiten.Key4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

var overlayColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// Game implements ebiten.Game for a machine.
type Game struct {
	logger  *log.Logger
	machine *xochip.Machine
	runner  *runner.Runner
	palette render.Palette

	screen *ebiten.Image
	pixels []byte
}

// New returns a game that advances the runner by one frame per update.
func New(logger *log.Logger, machine *xochip.Machine, r *runner.Runner) *Game {
	return &Game{
		logger:  logger,
		machine: machine,
		runner:  r,
		palette: render.DefaultPalette,
		pixels:  make([]byte, render.PixelBytes),
	}
}

// Update handles input and runs one frame of the machine. Faults stop the
// machine but keep the window open to show them.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for key, value := range KeyMap {
		if inpututil.IsKeyJustPressed(key) {
			g.machine.KeyDown(value)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.machine.KeyUp(value)
		}
	}

	if g.runner.Fault() == nil && !g.machine.Halted() {
		_ = g.runner.Frame()
	}
	return nil
}

// Draw renders the display planes and the fault overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.screen == nil {
		g.screen = ebiten.NewImage(xochip.Width, xochip.Height)
	}

	display := g.machine.Display()
	if display.Dirty() {
		g.palette.Fill(display, g.pixels)
		g.screen.WritePixels(g.pixels)
		display.Clean()
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(layoutScale, layoutScale)
	screen.DrawImage(g.screen, op)

	if msg := overlayMessage(g.runner.Fault(), g.machine.Halted()); msg != "" {
		text.Draw(screen, msg, basicfont.Face7x13, 4, 16, overlayColor)
	}
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return xochip.Width * layoutScale, xochip.Height * layoutScale
}

// overlayMessage returns the text shown over the screen for a stopped
// machine.
func overlayMessage(fault error, halted bool) string {
	switch {
	case fault != nil:
		return fmt.Sprintf("Machine fault:\n%s\nPress Escape to quit", fault)
	case halted:
		return "Program exited\nPress Escape to quit"
	default:
		return ""
	}
}

// Run opens the window and runs the game until the window is closed.
func Run(g *Game, title string, scale int) error {
	ebiten.SetWindowSize(xochip.Width*scale, xochip.Height*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(runner.FrameRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}
