package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Garsondee/Shadow-Cast/internal/shadow"
)

// arenaLayout is the stock 40x30 bordered arena with four pillars and two
// interior walls.
const arenaLayout = `
........................................
.BBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB.
.B....................................B.
.B....................................B.
.B....................................B.
.B....................................B.
.B......##....................##......B.
.B......##....................##......B.
.B....................................B.
.B....................................B.
.B....................................B.
.B....................................B.
.B..............########..............B.
.B....................................B.
.B....................................B.
.B....................................B.
.B..................#.................B.
.B..................#.................B.
.B..................#.................B.
.B..................#.................B.
.B..................#.................B.
.B....................................B.
.B......##....................##......B.
.B......##....................##......B.
.B....................................B.
.B....................................B.
.B....................................B.
.B....................................B.
.BBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB.
........................................
`

type reportConfig struct {
	block   float64
	origin  shadow.Vec
	radius  float64
	clip    bool
	verbose bool
}

type reportStats struct {
	cols, rows int
	occupied   int
	edges      int
	generation uint64

	origin   shadow.Vec
	raysCast int
	raysHit  int
	vertices int
	area     float64

	points []shadow.Point
	events *shadow.EventLog
	world  *shadow.World
}

type sweepStats struct {
	samples      int
	minArea      float64
	maxArea      float64
	meanArea     float64
	meanVertices float64
}

func main() {
	var layoutPath, geojsonPath string
	var x, y float64
	var doSweep bool
	cfg := reportConfig{}

	flag.StringVar(&layoutPath, "layout", "", "layout file (# block, B boundary, . empty); default built-in arena")
	flag.Float64Var(&cfg.block, "block", shadow.DefaultBlockSize, "cell size in world units")
	flag.Float64Var(&x, "x", -1, "viewpoint x (default arena centre)")
	flag.Float64Var(&y, "y", -1, "viewpoint y (default arena centre)")
	flag.Float64Var(&cfg.radius, "radius", shadow.DefaultRadius, "visibility ray length")
	flag.BoolVar(&cfg.clip, "clip", false, "stop rays at -radius")
	flag.StringVar(&geojsonPath, "geojson", "", "write edges and polygon as GeoJSON to this path")
	flag.BoolVar(&doSweep, "sweep", false, "also solve from every empty cell centre")
	flag.BoolVar(&cfg.verbose, "v", false, "print the event log")
	flag.Parse()

	if cfg.block <= 0 {
		fmt.Println("error: -block must be > 0")
		return
	}
	if cfg.radius <= 0 {
		fmt.Println("error: -radius must be > 0")
		return
	}

	grid, err := loadLayout(layoutPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	cfg.origin = shadow.Vec{X: x, Y: y}
	if x < 0 || y < 0 {
		cfg.origin = shadow.Vec{X: float64(grid.Cols) * cfg.block / 2, Y: float64(grid.Rows) * cfg.block / 2}
	}

	rs, err := runReport(grid, cfg)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	printReport(os.Stdout, rs)

	if doSweep {
		ss, err := sweep(rs.world, cfg.radius)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		printSweep(os.Stdout, ss)
	}

	if geojsonPath != "" {
		if err := writeGeoJSON(geojsonPath, rs); err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Printf("geojson written to %s\n", geojsonPath)
	}

	if cfg.verbose {
		fmt.Printf("\n=== Event Log ===\n%s", rs.events.Format())
	}
}

func loadLayout(path string) (*shadow.Grid, error) {
	if path == "" {
		return shadow.ParseLayout(arenaLayout)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	g, err := shadow.ParseLayout(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func runReport(grid *shadow.Grid, cfg reportConfig) (reportStats, error) {
	events := shadow.NewEventLog(cfg.verbose)
	world, err := shadow.NewWorld(
		shadow.WithGrid(grid),
		shadow.WithoutBorder(),
		shadow.WithBlockSize(cfg.block),
		shadow.WithSolver(shadow.Solver{Clip: cfg.clip}),
		shadow.WithEventLog(events),
	)
	if err != nil {
		return reportStats{}, err
	}

	res, err := world.Visibility(cfg.origin, cfg.radius)
	if err != nil {
		return reportStats{}, err
	}
	points := shadow.Dedupe(res.Points, shadow.DedupeTolerance)
	edges, gen := world.Edges()
	cols, rows := world.Size()

	return reportStats{
		cols:       cols,
		rows:       rows,
		occupied:   grid.OccupiedCount(),
		edges:      len(edges),
		generation: gen,
		origin:     cfg.origin,
		raysCast:   res.RaysCast,
		raysHit:    res.RaysHit,
		vertices:   len(points),
		area:       shadow.VisibleArea(points),
		points:     points,
		events:     events,
		world:      world,
	}, nil
}

// sweep solves from the centre of every empty cell and summarises the
// visible area.
func sweep(world *shadow.World, radius float64) (sweepStats, error) {
	grid := world.Grid()
	ss := sweepStats{minArea: math.Inf(1)}
	totalArea, totalVerts := 0.0, 0
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			if grid.Occupied(col, row) {
				continue
			}
			res, err := world.Visibility(world.Center(col, row), radius)
			if err != nil {
				return sweepStats{}, fmt.Errorf("cell (%d,%d): %w", col, row, err)
			}
			pts := shadow.Dedupe(res.Points, shadow.DedupeTolerance)
			area := shadow.VisibleArea(pts)
			ss.samples++
			totalArea += area
			totalVerts += len(pts)
			ss.minArea = math.Min(ss.minArea, area)
			ss.maxArea = math.Max(ss.maxArea, area)
		}
	}
	if ss.samples == 0 {
		ss.minArea = 0
		return ss, nil
	}
	ss.meanArea = totalArea / float64(ss.samples)
	ss.meanVertices = float64(totalVerts) / float64(ss.samples)
	return ss, nil
}

func printReport(w io.Writer, rs reportStats) {
	fmt.Fprintf(w, "=== Shadow Cast Report ===\n")
	fmt.Fprintf(w, "grid=%dx%d occupied=%d edges=%d generation=%d\n", rs.cols, rs.rows, rs.occupied, rs.edges, rs.generation)
	fmt.Fprintf(w, "origin=(%.1f,%.1f)\n", rs.origin.X, rs.origin.Y)
	fmt.Fprintf(w, "rays_cast=%d rays_hit=%d vertices=%d\n", rs.raysCast, rs.raysHit, rs.vertices)
	fmt.Fprintf(w, "visible_area=%.1f\n", rs.area)
}

func printSweep(w io.Writer, ss sweepStats) {
	fmt.Fprintf(w, "\n=== Sweep ===\n")
	fmt.Fprintf(w, "samples=%d area_min=%.1f area_mean=%.1f area_max=%.1f mean_vertices=%.1f\n",
		ss.samples, ss.minArea, ss.meanArea, ss.maxArea, ss.meanVertices)
}

func writeGeoJSON(path string, rs reportStats) error {
	edges, _ := rs.world.Edges()
	raw, err := shadow.FeatureCollection(edges, rs.origin, rs.points).MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	return nil
}
