// Command sketchpad opens the frame editor in a window.
//
// Settings come from SKETCHPAD_* environment variables; flags override them.
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/phanxgames/sketchpad"
	"github.com/phanxgames/sketchpad/ebitenhost"
)

const (
	titleKey    = "title"
	widthKey    = "width"
	heightKey   = "height"
	debugKey    = "debug"
	statusKey   = "status"
	scriptKey   = "script"
	zoomStepKey = "zoom-step"
	exitKey     = "exit-when-done"
	demoKey     = "demo"
)

func main() {
	env := ebitenhost.LoadRunConfig()
	cmd := &cli.Command{
		Name:  "sketchpad",
		Usage: "Draw and arrange frames on a canvas",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: titleKey, Usage: "Window title", Value: env.Title},
			&cli.IntFlag{Name: widthKey, Usage: "Window width in pixels", Value: int64(env.Width)},
			&cli.IntFlag{Name: heightKey, Usage: "Window height in pixels", Value: int64(env.Height)},
			&cli.BoolFlag{Name: debugKey, Usage: "Trace scene mutations to stderr", Value: env.Debug},
			&cli.BoolFlag{Name: statusKey, Usage: "Show the FPS and tool overlay", Value: env.ShowStatus},
			&cli.StringFlag{Name: scriptKey, Usage: "JSON input script to replay", Value: env.Script},
			&cli.FloatFlag{Name: zoomStepKey, Usage: "Zoom change per wheel notch", Value: env.ZoomStep},
			&cli.BoolFlag{Name: exitKey, Usage: "Quit when the script finishes", Value: env.ExitWhenDone},
			&cli.BoolFlag{Name: demoKey, Usage: "Start with sample frames", Value: true},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := ebitenhost.RunConfig{
		Title:        cmd.String(titleKey),
		Width:        int(cmd.Int(widthKey)),
		Height:       int(cmd.Int(heightKey)),
		Debug:        cmd.Bool(debugKey),
		ShowStatus:   cmd.Bool(statusKey),
		Script:       cmd.String(scriptKey),
		ZoomStep:     cmd.Float(zoomStepKey),
		ExitWhenDone: cmd.Bool(exitKey),
	}

	scene := sketchpad.NewScene()
	page, err := scene.AddCanvas("page")
	if err != nil {
		return err
	}
	if cmd.Bool(demoKey) {
		if err := seedDemo(scene, page); err != nil {
			return err
		}
	}

	app := sketchpad.NewAppModel(page)
	camera := sketchpad.NewCamera(sketchpad.Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)})
	editor := sketchpad.NewEditor(scene, app, camera)
	defer editor.Close()

	log.Printf("sketchpad: %d nodes, press F for the frame tool, Esc to select", scene.Len())
	return ebitenhost.Run(editor, cfg)
}

// seedDemo adds a frame with two nested frames and a sibling.
func seedDemo(scene *sketchpad.Scene, page sketchpad.Guid) error {
	var picker sketchpad.ColorPicker
	frames := []sketchpad.FrameProps{
		{Guid: "frame1", Parent: page, Width: 200, Height: 160, RelativeTransform: sketchpad.Translation(-250, -120)},
		{Guid: "frame2", Parent: "frame1", Width: 80, Height: 60, RelativeTransform: sketchpad.Translation(20, 20)},
		{Guid: "frame3", Parent: "frame1", Width: 80, Height: 60, RelativeTransform: sketchpad.Translation(100, 80)},
		{Guid: "frame4", Parent: page, Width: 160, Height: 160, RelativeTransform: sketchpad.Translation(50, -80)},
	}
	for _, f := range frames {
		f.Color = picker.Next()
		if _, err := scene.AddFrame(f); err != nil {
			return err
		}
	}
	return nil
}
