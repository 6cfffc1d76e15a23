package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/sketchpad"
)

// statusWidget renders FPS and editor state in the top-left corner. The text
// is refreshed every ~0.5 seconds.
type statusWidget struct {
	img        *ebiten.Image
	lastUpdate float64
}

func newStatusWidget() *statusWidget {
	// 220x48 fits three lines of debug text.
	return &statusWidget{img: ebiten.NewImage(220, 48), lastUpdate: 1}
}

func statusText(e *sketchpad.Editor, fps float64) string {
	app := e.AppModel()
	return fmt.Sprintf("FPS: %.1f  zoom: %.2f\ntool: %s  selected: %d\nnodes: %d",
		fps, e.Camera().Scale(), app.Tool(), app.Selection().Len(), e.Scene().Len())
}

func (w *statusWidget) update(dt float64, e *sketchpad.Editor) {
	w.lastUpdate += dt
	if w.lastUpdate < 0.5 {
		return
	}
	w.lastUpdate = 0

	w.img.Clear()
	// Semi-transparent background for readability
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, statusText(e, ebiten.ActualFPS()))
}

func (w *statusWidget) draw(screen *ebiten.Image) {
	screen.DrawImage(w.img, nil)
}
