package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Shadow-Cast/internal/shadow"
	"github.com/Garsondee/Shadow-Cast/internal/term"
)

func main() {
	var cols, rows int
	var radius float64
	var clip bool

	flag.IntVar(&cols, "cols", shadow.DefaultCols, "grid width in cells")
	flag.IntVar(&rows, "rows", shadow.DefaultRows, "grid height in cells")
	flag.Float64Var(&radius, "radius", shadow.DefaultRadius, "visibility ray length")
	flag.BoolVar(&clip, "clip", false, "stop rays at -radius")
	flag.Parse()

	world, err := shadow.NewWorld(
		shadow.WithGridSize(cols, rows),
		shadow.WithSolver(shadow.Solver{Clip: clip}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	state, err := term.NewState(world, radius)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open terminal: %v\n", err)
		os.Exit(1)
	}

	runErr := term.Run(screen, state)
	screen.Fini()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", runErr)
		os.Exit(1)
	}
}
