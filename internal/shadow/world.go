package shadow

import (
	"fmt"
	"math"
	"sync"
)

// World owns the occupancy grid and the edge pool derived from it. Every
// edit rebuilds the whole boundary before returning, so queries always see
// a pool that matches the grid.
//
// World is safe for concurrent use: rebuilds hold the write lock, queries
// the read lock.
type World struct {
	mu        sync.RWMutex
	grid      *Grid
	pool      EdgePool
	blockSize float64
	solver    Solver

	logMu sync.Mutex
	log   *EventLog
}

// optionKind controls the pass in which an option is applied.
type optionKind int

const (
	optInfra  optionKind = iota // grid size, block size, solver, log
	optLayout                   // border and cells, applied once the grid exists
)

// Option configures a World during construction.
type Option struct {
	kind optionKind
	fn   func(*World, *worldConfig)
}

type worldConfig struct {
	cols, rows int
	border     bool
}

// WithGridSize sets the grid dimensions in cells.
func WithGridSize(cols, rows int) Option {
	return Option{optInfra, func(_ *World, c *worldConfig) {
		c.cols = cols
		c.rows = rows
	}}
}

// WithBlockSize sets the world size of one cell.
func WithBlockSize(b float64) Option {
	return Option{optInfra, func(w *World, _ *worldConfig) {
		w.blockSize = b
	}}
}

// WithGrid uses g (not copied) instead of allocating an empty grid. The
// grid size option is ignored.
func WithGrid(g *Grid) Option {
	return Option{optInfra, func(w *World, _ *worldConfig) {
		w.grid = g
	}}
}

// WithSolver replaces the default visibility solver.
func WithSolver(s Solver) Option {
	return Option{optInfra, func(w *World, _ *worldConfig) {
		w.solver = s
	}}
}

// WithEventLog records world events into l.
func WithEventLog(l *EventLog) Option {
	return Option{optInfra, func(w *World, _ *worldConfig) {
		w.log = l
	}}
}

// WithBorder marks the arena border (see Grid.AddBorder).
func WithBorder() Option {
	return Option{optLayout, func(_ *World, c *worldConfig) {
		c.border = true
	}}
}

// WithoutBorder leaves the grid open.
func WithoutBorder() Option {
	return Option{optLayout, func(_ *World, c *worldConfig) {
		c.border = false
	}}
}

// NewWorld creates a world and builds its initial edge pool. Without
// options it is the 40x30 bordered arena of 16-unit cells.
func NewWorld(opts ...Option) (*World, error) {
	w := &World{blockSize: DefaultBlockSize}
	cfg := worldConfig{cols: DefaultCols, rows: DefaultRows, border: true}

	for _, kind := range []optionKind{optInfra, optLayout} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(w, &cfg)
			}
		}
	}

	if w.grid == nil {
		g, err := NewGrid(cfg.cols, cfg.rows)
		if err != nil {
			return nil, err
		}
		w.grid = g
	}
	if cfg.border {
		w.grid.AddBorder()
	}
	if w.log == nil {
		w.log = NewEventLog(false)
	}
	if err := w.Rebuild(); err != nil {
		return nil, err
	}
	return w, nil
}

// BlockSize returns the world size of one cell.
func (w *World) BlockSize() float64 {
	return w.blockSize
}

// Size returns the grid dimensions in cells.
func (w *World) Size() (cols, rows int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.grid.Cols, w.grid.Rows
}

// Grid returns a snapshot of the grid for drawing.
func (w *World) Grid() *Grid {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.grid.Clone()
}

// EventLog returns the world's event log.
func (w *World) EventLog() *EventLog {
	return w.log
}

// Rebuild regenerates the edge pool for the whole grid.
func (w *World) Rebuild() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rebuildLocked(w.grid.Bounds())
}

// RebuildRegion regenerates the edge pool from region r only. Edges from
// outside r are dropped along with the rest of the pool.
func (w *World) RebuildRegion(r Region) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rebuildLocked(r)
}

func (w *World) rebuildLocked(r Region) error {
	if err := Rebuild(w.grid, &w.pool, r, w.blockSize); err != nil {
		return err
	}
	w.record(false, "rebuild", "edges",
		fmt.Sprintf("gen=%d region=(%d,%d %dx%d) edges=%d", w.pool.Generation(), r.X, r.Y, r.W, r.H, w.pool.Len()),
		float64(w.pool.Len()))
	return nil
}

// Toggle flips the occupancy of (col, row) and rebuilds the boundary.
func (w *World) Toggle(col, row int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	occupied, err := w.grid.Toggle(col, row)
	if err != nil {
		return err
	}
	w.record(false, "toggle", "cell", fmt.Sprintf("(%d,%d) occupied=%t", col, row, occupied), 0)
	return w.rebuildLocked(w.grid.Bounds())
}

// ToggleAt toggles the cell containing world point (x, y).
func (w *World) ToggleAt(x, y float64) error {
	w.mu.RLock()
	col, row, ok := w.grid.CellAt(x, y, w.blockSize)
	w.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: point (%.1f,%.1f)", ErrCellOutOfBounds, x, y)
	}
	return w.Toggle(col, row)
}

// Edges returns a copy of the current edge pool and its generation.
func (w *World) Edges() ([]Edge, uint64) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pool.Edges(), w.pool.Generation()
}

// Generation returns the number of rebuilds performed so far.
func (w *World) Generation() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pool.Generation()
}

// Visibility computes the visibility polygon from origin against the
// current edge pool.
func (w *World) Visibility(origin Vec, maxRadius float64) (Result, error) {
	w.mu.RLock()
	res, err := w.solver.Solve(origin, w.pool.view(), maxRadius)
	gen := w.pool.Generation()
	w.mu.RUnlock()
	if err != nil {
		return Result{}, err
	}
	w.record(true, "query", "visibility",
		fmt.Sprintf("gen=%d origin=(%.1f,%.1f) rays=%d hits=%d", gen, origin.X, origin.Y, res.RaysCast, res.RaysHit),
		float64(len(res.Points)))
	return res, nil
}

// Center returns the world coordinates of the centre of (col, row).
func (w *World) Center(col, row int) Vec {
	half := w.blockSize / 2
	return Vec{float64(col)*w.blockSize + half, float64(row)*w.blockSize + half}
}

// Extent returns the world size of the grid.
func (w *World) Extent() Vec {
	cols, rows := w.Size()
	return Vec{float64(cols) * w.blockSize, float64(rows) * w.blockSize}
}

// Diagonal returns the length of the grid's diagonal in world units.
func (w *World) Diagonal() float64 {
	e := w.Extent()
	return math.Hypot(e.X, e.Y)
}

func (w *World) record(verbose bool, category, key, value string, num float64) {
	w.logMu.Lock()
	defer w.logMu.Unlock()
	if verbose {
		w.log.AddVerbose(category, key, value, num)
		return
	}
	w.log.Add(category, key, value, num)
}
