package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Shadow-Cast/internal/demo"
	"github.com/Garsondee/Shadow-Cast/internal/shadow"
)

func main() {
	var cols, rows, scale int
	var block, radius float64
	var clip, verbose bool

	flag.IntVar(&cols, "cols", shadow.DefaultCols, "grid width in cells")
	flag.IntVar(&rows, "rows", shadow.DefaultRows, "grid height in cells")
	flag.Float64Var(&block, "block", shadow.DefaultBlockSize, "cell size in pixels")
	flag.Float64Var(&radius, "radius", shadow.DefaultRadius, "visibility ray length")
	flag.BoolVar(&clip, "clip", false, "stop rays at -radius")
	flag.IntVar(&scale, "scale", 2, "window scale factor")
	flag.BoolVar(&verbose, "v", false, "print the event log on exit")
	flag.Parse()

	events := shadow.NewEventLog(verbose)
	world, err := shadow.NewWorld(
		shadow.WithGridSize(cols, rows),
		shadow.WithBlockSize(block),
		shadow.WithSolver(shadow.Solver{Clip: clip}),
		shadow.WithEventLog(events),
	)
	if err != nil {
		log.Fatal(err)
	}

	g := demo.New(world, demo.Config{Radius: radius})
	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("Shadow Cast")
	ebiten.SetWindowSize(w*scale, h*scale)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	if verbose {
		log.Printf("event log:\n%s", events.Format())
	}
}
