// Command scenebench measures scene mutation, derivation and hit-test latency
// over a range of scene sizes and prints a summary table.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/phanxgames/sketchpad"
)

const (
	itersKey = "iters"
	depthKey = "depth"
)

var widths = []int{10, 100, 1_000, 10_000}

func main() {
	cmd := &cli.Command{
		Name:  "scenebench",
		Usage: "Benchmark scene derivation and hit testing",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: itersKey, Usage: "Samples per benchmark", Value: 200},
			&cli.IntFlag{Name: depthKey, Usage: "Nesting depth of each column of frames", Value: 4},
		},
		Action: bench,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func bench(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Int(itersKey))
	depth := int(cmd.Int(depthKey))
	if iters < 1 || depth < 1 {
		return fmt.Errorf("iters and depth must be positive")
	}

	tbl := table.NewWriter()
	tbl.SetTitle("sketchpad scene")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "nodes", "avg", "min", "p75", "p99", "max"})

	for _, w := range widths {
		scene, roots, err := buildScene(w, depth)
		if err != nil {
			return err
		}
		nodes := humanize.Comma(int64(scene.Len()))

		// Moving a column root re-derives its whole subtree.
		tach := tachymeter.New(&tachymeter.Config{Size: iters})
		for i := 0; i < iters; i++ {
			g := roots[i%len(roots)]
			start := time.Now()
			if err := scene.Set(g, sketchpad.KeyRelativeTransform, sketchpad.Translation(float64(i), 0)); err != nil {
				return err
			}
			tach.AddTime(time.Since(start))
		}
		tbl.AppendRows([]table.Row{timingRow(fmt.Sprintf("translate: %d cols * %d deep", w, depth), nodes, tach)})

		tach = tachymeter.New(&tachymeter.Config{Size: iters})
		for i := 0; i < iters; i++ {
			p := sketchpad.Vec2{X: float64((i * 37) % (w * 30)), Y: 5}
			start := time.Now()
			scene.Hits("page", p, 4, sketchpad.HitCheckAll)
			tach.AddTime(time.Since(start))
		}
		tbl.AppendRows([]table.Row{timingRow(fmt.Sprintf("hits: %d cols", w), nodes, tach)})

		tach = tachymeter.New(&tachymeter.Config{Size: iters})
		for i := 0; i < iters; i++ {
			start := time.Now()
			scene.Digest()
			tach.AddTime(time.Since(start))
		}
		tbl.AppendRows([]table.Row{timingRow("digest", nodes, tach)})

		// Re-parenting a column under its neighbour and back.
		tach = tachymeter.New(&tachymeter.Config{Size: iters})
		for i := 0; i < iters && len(roots) > 1; i++ {
			g := roots[(i+1)%len(roots)]
			to := roots[i%len(roots)]
			start := time.Now()
			if err := scene.Set(g, sketchpad.KeyParent, to); err != nil {
				return err
			}
			if err := scene.Set(g, sketchpad.KeyParent, sketchpad.Guid("page")); err != nil {
				return err
			}
			tach.AddTime(time.Since(start))
		}
		tbl.AppendRows([]table.Row{timingRow("reparent round trip", nodes, tach)})
	}

	tbl.Render()
	return nil
}

// buildScene creates a page with w columns of depth nested frames.
func buildScene(w, depth int) (*sketchpad.Scene, []sketchpad.Guid, error) {
	scene := sketchpad.NewScene()
	scene.SetDiagnostics(io.Discard)
	if _, err := scene.AddCanvas("page"); err != nil {
		return nil, nil, err
	}
	roots := make([]sketchpad.Guid, 0, w)
	for i := 0; i < w; i++ {
		parent := sketchpad.Guid("page")
		for d := 0; d < depth; d++ {
			props := sketchpad.FrameProps{
				Guid:              sketchpad.Guid(fmt.Sprintf("f%d.%d", i, d)),
				Parent:            parent,
				Width:             20,
				Height:            20,
				RelativeTransform: sketchpad.Translation(1, 1),
			}
			if d == 0 {
				props.RelativeTransform = sketchpad.Translation(float64(i*30), 0)
			}
			g, err := scene.AddFrame(props)
			if err != nil {
				return nil, nil, err
			}
			if d == 0 {
				roots = append(roots, g)
			}
			parent = g
		}
	}
	return scene, roots, nil
}

func timingRow(name, nodes string, tach *tachymeter.Tachymeter) table.Row {
	calc := tach.Calc()
	return table.Row{name, nodes, calc.Time.Avg, calc.Time.Min, calc.Time.P75, calc.Time.P99, calc.Time.Max}
}
