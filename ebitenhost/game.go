// Package ebitenhost runs a sketchpad editor in an Ebitengine window. It
// samples mouse, wheel and keyboard input, feeds it to the editor and
// rasterizes the editor's drawables.
package ebitenhost

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/sketchpad"
)

// wheelPanStep is the pan distance in pixels per wheel notch.
const wheelPanStep = 20.0

// hotkeys maps Ebitengine keys to editor keys.
var hotkeys = map[ebiten.Key]sketchpad.Key{
	ebiten.KeyF:      sketchpad.KeyF,
	ebiten.KeyEscape: sketchpad.KeyEscape,
	ebiten.KeyHome:   sketchpad.KeyHome,
	ebiten.KeyDigit0: sketchpad.KeyHome,
}

// Game implements ebiten.Game for an editor.
type Game struct {
	cfg     RunConfig
	editor  *sketchpad.Editor
	pointer *sketchpad.PointerTracker
	runner  *sketchpad.TestRunner
	status  *statusWidget

	width, height int
}

// NewGame wraps editor. The editor's camera viewport follows the window size.
func NewGame(editor *sketchpad.Editor, cfg RunConfig) *Game {
	if cfg.ZoomStep <= 0 {
		cfg.ZoomStep = 0.05
	}
	editor.Scene().SetDebugMode(cfg.Debug)
	return &Game{
		cfg:     cfg,
		editor:  editor,
		pointer: sketchpad.NewPointerTracker(editor),
		width:   cfg.Width,
		height:  cfg.Height,
	}
}

// SetTestRunner replays r before reading real input.
func (g *Game) SetTestRunner(r *sketchpad.TestRunner) {
	g.runner = r
}

// Pointer returns the game's pointer tracker.
func (g *Game) Pointer() *sketchpad.PointerTracker { return g.pointer }

// readModifiers reads the current keyboard modifier state.
func readModifiers() sketchpad.KeyModifiers {
	var mods sketchpad.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= sketchpad.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= sketchpad.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= sketchpad.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= sketchpad.ModMeta
	}
	return mods
}

// wheelAction decides what a wheel sample does: with Ctrl or Meta held the
// vertical wheel zooms, otherwise both axes pan.
func wheelAction(wx, wy float64, mods sketchpad.KeyModifiers) (delta sketchpad.Vec2, zoom bool) {
	if mods&(sketchpad.ModCtrl|sketchpad.ModMeta) != 0 {
		return sketchpad.Vec2{Y: wy}, true
	}
	return sketchpad.Vec2{X: wx * wheelPanStep, Y: wy * wheelPanStep}, false
}

func (g *Game) Update() error {
	e := g.editor
	e.Camera().SetViewport(float64(g.width), float64(g.height))

	scripted := false
	if g.runner != nil && !g.runner.Done() {
		g.runner.Step(g.pointer)
		scripted = true
	} else if g.runner != nil && g.cfg.ExitWhenDone {
		return ebiten.Termination
	}

	for k, hk := range hotkeys {
		if inpututil.IsKeyJustPressed(k) {
			e.HandleKey(hk)
		}
	}

	mods := readModifiers()
	mx, my := ebiten.CursorPosition()
	cursor := sketchpad.Vec2{X: float64(mx), Y: float64(my)}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		delta, zoom := wheelAction(wx, wy, mods)
		e.HandleWheel(cursor, delta, zoom, g.cfg.ZoomStep)
	}

	if !scripted {
		g.pointer.Sample(cursor, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), mods)
	}

	dt := 1.0 / float64(ebiten.TPS())
	e.Think(float32(dt))
	if g.status != nil {
		g.status.update(dt, e)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	ds := g.editor.Render(sketchpad.Vec2{X: float64(b.Dx()), Y: float64(b.Dy())})
	drawDrawables(screen, ds)
	if g.status != nil {
		g.status.draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens a window and runs the editor until it is closed.
func Run(editor *sketchpad.Editor, cfg RunConfig) error {
	g := NewGame(editor, cfg)
	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := sketchpad.LoadTestScript(data)
		if err != nil {
			return err
		}
		g.SetTestRunner(runner)
	}
	if cfg.ShowStatus {
		g.status = newStatusWidget()
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
